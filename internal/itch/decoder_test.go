package itch

import "testing"

func TestParseOneBufferTooSmall(t *testing.T) {
	buf := buildAddOrder(t, 1, 1, 0, 1, 'B', 1, "AAPL", 1)
	h := &recordingHandler{}
	result := ParseOne(buf[:35], h)
	if result != BufferTooSmall {
		t.Fatalf("ParseOne = %v, want BufferTooSmall", result)
	}
}

func TestParseOneUnknownType(t *testing.T) {
	buf := []byte{'Z', 1, 2, 3}
	var gotType byte
	var gotBuf []byte
	h := &recordingHandler{onUnknown: func(mt byte, b []byte) {
		gotType, gotBuf = mt, b
	}}
	result := ParseOne(buf, h)
	if result != UnknownType {
		t.Fatalf("ParseOne = %v, want UnknownType", result)
	}
	if gotType != 'Z' {
		t.Fatalf("onUnknown type = %c, want Z", gotType)
	}
	if len(gotBuf) != len(buf) {
		t.Fatalf("onUnknown buf len = %d, want %d", len(gotBuf), len(buf))
	}
}

func TestParseOneRecognizedNoTypedView(t *testing.T) {
	// SystemEvent ('S') is recognized but has no typed view; it must be
	// delivered via OnUnknown and still report Ok.
	buf := make([]byte, 12)
	buf[0] = MsgTypeSystemEvent
	var seen bool
	h := &recordingHandler{onUnknown: func(byte, []byte) { seen = true }}
	result := ParseOne(buf, h)
	if result != Ok {
		t.Fatalf("ParseOne = %v, want Ok", result)
	}
	if !seen {
		t.Fatal("OnUnknown not invoked for recognized-but-untyped message")
	}
}

func TestParseOneInvalidMessage(t *testing.T) {
	h := &recordingHandler{}
	if got := ParseOne(nil, h); got != InvalidMessage {
		t.Fatalf("ParseOne(nil) = %v, want InvalidMessage", got)
	}
}

func TestParseStreamConsumesWholeMessages(t *testing.T) {
	msg := buildAddOrder(t, 1, 1, 100, 42, 'B', 10, "AAPL", 1_000_000)
	buf := append(append([]byte{}, msg...), msg...)

	var count int
	h := &recordingHandler{onAdd: func(AddOrder) { count++ }}

	consumed := ParseStream(buf, h)
	if consumed != len(buf) {
		t.Fatalf("consumed = %d, want %d", consumed, len(buf))
	}
	if count != 2 {
		t.Fatalf("decoded %d AddOrder messages, want 2", count)
	}
}

func TestParseStreamStopsOnIncompleteTrailingMessage(t *testing.T) {
	msg := buildAddOrder(t, 1, 1, 100, 42, 'B', 10, "AAPL", 1_000_000)
	buf := append(append([]byte{}, msg...), msg[:3]...)

	var count int
	h := &recordingHandler{onAdd: func(AddOrder) { count++ }}

	consumed := ParseStream(buf, h)
	if consumed != len(msg) {
		t.Fatalf("consumed = %d, want %d", consumed, len(msg))
	}
	if count != 1 {
		t.Fatalf("decoded %d messages, want exactly 1", count)
	}
}

func TestParseStreamEmptyBuffer(t *testing.T) {
	h := &recordingHandler{}
	if got := ParseStream(nil, h); got != 0 {
		t.Fatalf("ParseStream(nil) = %d, want 0", got)
	}
}

func TestOrderExecutedRoundTrip(t *testing.T) {
	buf := make([]byte, 31)
	buf[0] = MsgTypeOrderExecuted
	putUint16(buf[1:3], 7)
	putUint16(buf[3:5], 8)
	putUint48(buf[5:11], 55)
	putUint64(buf[11:19], 9001)
	putUint32(buf[19:23], 250)
	putUint64(buf[23:31], 777)

	var got OrderExecuted
	h := &recordingHandler{onExecuted: func(m OrderExecuted) { got = m }}
	if result := ParseOne(buf, h); result != Ok {
		t.Fatalf("ParseOne = %v, want Ok", result)
	}
	if got.OrderReference() != 9001 {
		t.Fatalf("OrderReference = %d, want 9001", got.OrderReference())
	}
	if got.ExecutedShares() != 250 {
		t.Fatalf("ExecutedShares = %d, want 250", got.ExecutedShares())
	}
	if got.MatchNumber() != 777 {
		t.Fatalf("MatchNumber = %d, want 777", got.MatchNumber())
	}
}

func TestSplitFramesWholeMessages(t *testing.T) {
	msg := buildAddOrder(t, 1, 1, 100, 42, 'B', 10, "AAPL", 1_000_000)
	buf := append(append([]byte{}, msg...), msg...)

	frames, consumed := SplitFrames(buf)
	if consumed != len(buf) {
		t.Fatalf("consumed = %d, want %d", consumed, len(buf))
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	for _, f := range frames {
		if len(f) != len(msg) {
			t.Fatalf("frame length = %d, want %d", len(f), len(msg))
		}
	}
}

func TestSplitFramesStopsOnTruncatedTrailer(t *testing.T) {
	msg := buildAddOrder(t, 1, 1, 100, 42, 'B', 10, "AAPL", 1_000_000)
	buf := append(append([]byte{}, msg...), msg[:5]...)

	frames, consumed := SplitFrames(buf)
	if consumed != len(msg) {
		t.Fatalf("consumed = %d, want %d", consumed, len(msg))
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
}

func TestSplitFramesStopsOnUnknownType(t *testing.T) {
	frames, consumed := SplitFrames([]byte{'Z', 1, 2, 3})
	if consumed != 0 || frames != nil {
		t.Fatalf("consumed=%d frames=%v, want 0/nil", consumed, frames)
	}
}

func TestOrderCancelAndDeleteRoundTrip(t *testing.T) {
	cancel := make([]byte, 23)
	cancel[0] = MsgTypeOrderCancel
	putUint64(cancel[11:19], 55)
	putUint32(cancel[19:23], 30)

	var gotCancel OrderCancel
	h := &recordingHandler{onCancel: func(m OrderCancel) { gotCancel = m }}
	if result := ParseOne(cancel, h); result != Ok {
		t.Fatalf("ParseOne(cancel) = %v, want Ok", result)
	}
	if gotCancel.OrderReference() != 55 || gotCancel.CancelledShares() != 30 {
		t.Fatalf("unexpected OrderCancel fields: %+v", gotCancel)
	}

	del := make([]byte, 19)
	del[0] = MsgTypeOrderDelete
	putUint64(del[11:19], 99)

	var gotDelete OrderDelete
	h2 := &recordingHandler{onDelete: func(m OrderDelete) { gotDelete = m }}
	if result := ParseOne(del, h2); result != Ok {
		t.Fatalf("ParseOne(delete) = %v, want Ok", result)
	}
	if gotDelete.OrderReference() != 99 {
		t.Fatalf("OrderReference = %d, want 99", gotDelete.OrderReference())
	}
}
