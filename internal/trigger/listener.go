package trigger

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// keySource платформенный источник сырых событий клавиатуры.
// Реализация под Windows в файле keyboard_windows.go.
type keySource interface {
	run(ctx context.Context, out chan<- KeyEvent)
}

// FireHandler вызывается при срабатывании триггера. Обработчик обязан
// быть неблокирующим: тяжёлую работу он сам уводит в отдельную горутину,
// чтобы не задерживать поток доставки клавиш.
type FireHandler func(at time.Time)

// Listener связывает платформенный источник клавиш с движком триггеров.
// События обрабатываются строго последовательно в одной горутине.
type Listener struct {
	engine    *Engine
	logger    *zap.SugaredLogger
	onCapture FireHandler
	onSend    FireHandler

	in      chan KeyEvent
	running atomic.Bool
}

func NewListener(engine *Engine, logger *zap.SugaredLogger, onCapture, onSend FireHandler) *Listener {
	return &Listener{
		engine:    engine,
		logger:    logger,
		onCapture: onCapture,
		onSend:    onSend,
		in:        make(chan KeyEvent, 64),
	}
}

// Run запускает платформенный слушатель клавиатуры и цикл обработки.
// Блокирующий метод; завершается по отмене контекста.
func (l *Listener) Run(ctx context.Context) error {
	src, err := newKeySource()
	if err != nil {
		return err
	}

	l.running.Store(true)
	defer l.running.Store(false)

	go src.run(ctx, l.in)

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case ev := <-l.in:
			l.handle(ev)
		}
	}
}

// Running сообщает, активен ли цикл обработки.
func (l *Listener) Running() bool { return l.running.Load() }

func (l *Listener) handle(ev KeyEvent) {
	switch ev.Key {
	case KeyEnter:
		if l.engine.OnEvent(KindCapture, ev.At) && l.onCapture != nil {
			l.logger.Infow("Trigger fired", "kind", KindCapture.String())
			l.onCapture(ev.At)
		}
	case KeyShift:
		if l.engine.OnEvent(KindSend, ev.At) && l.onSend != nil {
			l.logger.Infow("Trigger fired", "kind", KindSend.String())
			l.onSend(ev.At)
		}
	default:
		// Прочие клавиши игнорируем
	}
}
