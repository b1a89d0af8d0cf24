package trigger

import (
	"sync"
	"time"
)

// Kind логический вид триггера. У каждого вида своё независимое окно.
type Kind int

const (
	KindCapture Kind = iota + 1 // Скриншот по повторному Enter
	KindSend                    // Отправка буфера обмена по повторному Shift
)

func (k Kind) String() string {
	switch k {
	case KindCapture:
		return "capture"
	case KindSend:
		return "send"
	default:
		return "unknown"
	}
}

// Key логический идентификатор клавиши, приходящий от слушателя.
type Key int

const (
	KeyEnter Key = iota + 1
	KeyShift
)

// KeyEvent сырое событие нажатия клавиши.
type KeyEvent struct {
	Key Key
	At  time.Time
}

// Engine скользящее окно по каждому виду триггера: N нажатий за T секунд.
// Мутации окна защищены мьютексом, чтобы движок оставался корректным,
// если доставка событий когда-нибудь станет конкурентной.
type Engine struct {
	mu       sync.Mutex
	required int
	window   time.Duration
	times    map[Kind][]time.Time
}

func NewEngine(required int, window time.Duration) *Engine {
	if required < 1 {
		required = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &Engine{
		required: required,
		window:   window,
		times:    make(map[Kind][]time.Time, 2),
	}
}

// OnEvent регистрирует событие и сообщает, сработал ли триггер.
// Порядок строго purge → append → проверка счётчика; возраст считается
// от времени события, а не от повторного чтения часов.
func (e *Engine) OnEvent(kind Kind, at time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ts := e.times[kind]

	// Чистим устаревшие отметки относительно времени текущего события
	kept := ts[:0]
	for _, t := range ts {
		if at.Sub(t) <= e.window {
			kept = append(kept, t)
		}
	}
	kept = append(kept, at)

	if len(kept) >= e.required {
		// Сбрасываем окно сразу, чтобы не было повторного срабатывания
		e.times[kind] = kept[:0]
		return true
	}
	e.times[kind] = kept
	return false
}

// Pending текущее число отметок в окне вида (для дебага и тестов).
func (e *Engine) Pending(kind Kind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.times[kind])
}
