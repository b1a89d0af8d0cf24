package mail

import (
	"testing"
	"time"

	"ExamAssistant/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Enabled:        true,
		SMTPServer:     "smtp.example.com",
		SMTPPort:       465,
		SenderEmail:    "from@example.com",
		SenderPassword: "secret",
		ReceiverEmail:  "to@example.com",
	}
}

func TestValidateConfig(t *testing.T) {
	s := NewSender(validEmailConfig(), zap.NewNop().Sugar())
	require.NoError(t, s.ValidateConfig())

	cases := map[string]func(*config.EmailConfig){
		"no server":   func(c *config.EmailConfig) { c.SMTPServer = "" },
		"no port":     func(c *config.EmailConfig) { c.SMTPPort = 0 },
		"no sender":   func(c *config.EmailConfig) { c.SenderEmail = "" },
		"no password": func(c *config.EmailConfig) { c.SenderPassword = "" },
		"no receiver": func(c *config.EmailConfig) { c.ReceiverEmail = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validEmailConfig()
			mutate(&cfg)
			s := NewSender(cfg, zap.NewNop().Sugar())
			assert.Error(t, s.ValidateConfig())
		})
	}
}

func TestSendFailsFastOnInvalidConfig(t *testing.T) {
	cfg := validEmailConfig()
	cfg.ReceiverEmail = ""
	s := NewSender(cfg, zap.NewNop().Sugar())

	err := s.SendClipboard("text", "analysis", time.Now())
	assert.Error(t, err)
}

func TestEnabledFollowsConfig(t *testing.T) {
	cfg := validEmailConfig()
	assert.True(t, NewSender(cfg, zap.NewNop().Sugar()).Enabled())
	cfg.Enabled = false
	assert.False(t, NewSender(cfg, zap.NewNop().Sugar()).Enabled())
}
