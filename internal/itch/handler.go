package itch

// Handler is the polymorphic delivery target for decoded ITCH messages. The
// decoder calls exactly one method per successfully classified message,
// synchronously, and the decoded view is valid only for the duration of
// that call — implementations that need the data afterward must copy it.
//
// Recognized type codes without a typed view in this package (see
// messageLengths) are delivered via OnUnknown so the caller can still see
// the raw bytes without the decoder having to project a view for them.
type Handler interface {
	OnAddOrder(msg AddOrder)
	OnOrderExecuted(msg OrderExecuted)
	OnOrderCancel(msg OrderCancel)
	OnOrderDelete(msg OrderDelete)
	OnUnknown(msgType byte, buf []byte)
}

// BaseHandler implements Handler with no-ops for every method, so a
// consumer can embed it and override only the messages it cares about.
type BaseHandler struct{}

func (BaseHandler) OnAddOrder(AddOrder)             {}
func (BaseHandler) OnOrderExecuted(OrderExecuted)   {}
func (BaseHandler) OnOrderCancel(OrderCancel)       {}
func (BaseHandler) OnOrderDelete(OrderDelete)       {}
func (BaseHandler) OnUnknown(byte, []byte)          {}

var _ Handler = BaseHandler{}
