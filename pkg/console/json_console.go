package console

import (
	"fmt"
	"io"

	"github.com/diillson/aws-cost-report/internal/shared/types"
	"github.com/rs/zerolog"
)

// JSONConsole escreve cada mensagem como uma linha JSON. É o console usado
// dentro do Lambda, onde o stdout vai direto para o CloudWatch Logs.
type JSONConsole struct {
	logger zerolog.Logger
}

// NewJSONConsole creates a console writing JSON lines to w.
func NewJSONConsole(w io.Writer) *JSONConsole {
	return &JSONConsole{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// With returns a copy of the console that adds key=value to every line.
func (c *JSONConsole) With(key, value string) *JSONConsole {
	return &JSONConsole{logger: c.logger.With().Str(key, value).Logger()}
}

func (c *JSONConsole) Println(a ...interface{}) {
	c.logger.Info().Msg(fmt.Sprint(a...))
}

func (c *JSONConsole) LogInfo(format string, a ...interface{}) {
	c.logger.Info().Msgf(format, a...)
}

func (c *JSONConsole) LogWarning(format string, a ...interface{}) {
	c.logger.Warn().Msgf(format, a...)
}

func (c *JSONConsole) LogError(format string, a ...interface{}) {
	c.logger.Error().Msgf(format, a...)
}

func (c *JSONConsole) LogSuccess(format string, a ...interface{}) {
	c.logger.Info().Bool("success", true).Msgf(format, a...)
}

// Status não tem spinner aqui; registra o início e o fim da etapa.
func (c *JSONConsole) Status(message string) types.StatusHandle {
	c.logger.Debug().Str("status", "started").Msg(message)
	return &jsonStatus{logger: c.logger, message: message}
}

func (c *JSONConsole) CreateTable() types.TableInterface {
	return newTable()
}

type jsonStatus struct {
	logger  zerolog.Logger
	message string
}

func (s *jsonStatus) Update(message string) {
	s.message = message
	s.logger.Debug().Str("status", "running").Msg(message)
}

func (s *jsonStatus) Stop() {
	s.logger.Debug().Str("status", "done").Msg(s.message)
}
