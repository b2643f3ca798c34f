package notifier

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

type ISmsSender interface {
	Send(phone, text string) error
}

// consoleSmsSender prints the message to stdout instead of hitting a gateway.
// It is the default provider for local and staging environments where no SMS
// credentials exist; the payload is exactly what a real gateway would carry.
type consoleSmsSender struct {
	header *color.Color
	body   *color.Color
}

func NewConsoleSmsSender() ISmsSender {
	return &consoleSmsSender{
		header: color.New(color.FgCyan, color.Bold),
		body:   color.New(color.FgGreen),
	}
}

func (s *consoleSmsSender) Send(phone, text string) error {
	s.header.Printf("━━ SMS to %s (%d chars) ━━\n", phone, len(text))
	s.body.Println(text)
	s.header.Println(strings.Repeat("━", 24))
	return nil
}

// NewSmsSender selects the SMS provider by name. Only the console provider
// ships today; unknown names fail loudly at boot rather than at send time.
func NewSmsSender(provider string) (ISmsSender, error) {
	switch provider {
	case "", "console":
		return NewConsoleSmsSender(), nil
	default:
		return nil, fmt.Errorf("unsupported sms provider: %s", provider)
	}
}
