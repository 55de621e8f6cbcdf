package mq

import (
	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// watermillLogger 把 Watermill 内部日志桥接到应用的 zerolog，
// 媒体事件发布链路的日志因此与其余组件共用同一输出.
type watermillLogger struct {
	l *zerolog.Logger
}

func emit(ev *zerolog.Event, msg string, fields watermill.LogFields) {
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}

	ev.Msg(msg)
}

func (w *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	emit(w.l.Error().Err(err), msg, fields)
}

func (w *watermillLogger) Info(msg string, fields watermill.LogFields) {
	emit(w.l.Info(), msg, fields)
}

func (w *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	emit(w.l.Debug(), msg, fields)
}

func (w *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	emit(w.l.Trace(), msg, fields)
}

func (w *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	builder := w.l.With()
	for k, v := range fields {
		builder = builder.Interface(k, v)
	}

	logger := builder.Logger()

	return &watermillLogger{l: &logger}
}

// String 实现 fmt.Stringer.
func (w *watermillLogger) String() string { return "zerolog-watermill适配器" }
