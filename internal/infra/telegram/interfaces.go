package telegram

type SinkInterface interface {
	Notify(message string)
}

var _ SinkInterface = (*Sink)(nil)
