//go:build windows

package trigger

import (
	"context"
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
)

// Обёртки для функций, которых нет в lxn/win
var (
	user32                    = syscall.NewLazyDLL("user32.dll")
	procSetWindowsHookExW     = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx   = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx        = user32.NewProc("CallNextHookEx")
	procPostThreadMessageW    = user32.NewProc("PostThreadMessageW")
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procGetCurrentThreadID    = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmSyskeydown = 0x0104

	vkReturn = 0x0D
	vkShift  = 0x10
	vkLShift = 0xA0
	vkRShift = 0xA1
)

// kbdllHookStruct повторяет KBDLLHOOKSTRUCT из WinAPI.
type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type winKeySource struct{}

func newKeySource() (keySource, error) { return &winKeySource{}, nil }

// run ставит низкоуровневый хук клавиатуры и крутит цикл сообщений.
// Хук живёт в закреплённом системном потоке; коллбек хука обязан
// возвращаться быстро, поэтому события уходят в канал без блокировки.
func (w *winKeySource) run(ctx context.Context, out chan<- KeyEvent) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	emit := func(key Key) {
		select {
		case out <- KeyEvent{Key: key, At: time.Now()}:
		default:
			// в случае переполнения — дроп, чтобы не блокировать хук
		}
	}

	hookProc := syscall.NewCallback(func(nCode int32, wParam, lParam uintptr) uintptr {
		if nCode >= 0 && (wParam == wmKeydown || wParam == wmSyskeydown) {
			kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
			switch kb.VkCode {
			case vkReturn:
				emit(KeyEnter)
			case vkShift, vkLShift, vkRShift:
				emit(KeyShift)
			}
		}
		r, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	})

	hook, _, _ := procSetWindowsHookExW.Call(whKeyboardLL, hookProc, 0, 0)
	if hook == 0 {
		return
	}
	defer procUnhookWindowsHookEx.Call(hook)

	// По отмене контекста будим цикл сообщений WM_QUIT-ом
	tid, _, _ := procGetCurrentThreadID.Call()
	go func() {
		<-ctx.Done()
		procPostThreadMessageW.Call(tid, win.WM_QUIT, 0, 0)
	}()

	msg := new(win.MSG)
	for {
		r := win.GetMessage(msg, 0, 0, 0)
		if r == 0 || r == -1 { // WM_QUIT или ошибка
			break
		}
		win.TranslateMessage(msg)
		win.DispatchMessage(msg)
	}
}
