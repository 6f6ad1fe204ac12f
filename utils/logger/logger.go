package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/streamzip/tap-hubspot/constants"
	"github.com/streamzip/tap-hubspot/types"
	"github.com/streamzip/tap-hubspot/utils"
)

var (
	logger zerolog.Logger

	// stdout carries protocol messages only; log lines go to stderr and the
	// rotating file so the two are never interleaved.
	stdoutMu      sync.Mutex
	stdoutEncoder = json.NewEncoder(os.Stdout)
)

func init() {
	// console-only until Init runs; Fatal must work before flags are parsed
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

// Init wires the console and rotating file sinks. The file sink lives under
// CONFIG_FOLDER (viper), matching where state artifacts are written.
func Init() {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	sinks := []io.Writer{console}
	if folder := viper.GetString(constants.ConfigFolder); folder != "" {
		sinks = append(sinks, &lumberjack.Logger{
			Filename:   filepath.Join(folder, "logs", "tap.log"),
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}

	logger = zerolog.New(zerolog.MultiLevelWriter(sinks...)).With().Timestamp().Logger()
}

func Debugf(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}

func Info(message string) {
	logger.Info().Msg(message)
}

func Infof(format string, args ...any) {
	logger.Info().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	logger.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Error().Msgf(format, args...)
}

// Fatal logs the error and terminates the run with a non-zero exit. Only the
// command layer calls this; lower layers propagate typed errors instead.
func Fatal(err error) {
	logger.Fatal().Err(err).Msg("run aborted")
}

func writeMessage(message types.Message) error {
	stdoutMu.Lock()
	defer stdoutMu.Unlock()
	return stdoutEncoder.Encode(message)
}

// LogSpec emits the connector's configuration spec message.
func LogSpec(spec map[string]any) {
	if err := writeMessage(types.Message{Type: types.SpecMessage, Spec: spec}); err != nil {
		Fatal(fmt.Errorf("failed to write spec message: %s", err))
	}
}

// LogConnectionStatus emits the result of a check run.
func LogConnectionStatus(status types.ConnectionStatus, message string) {
	err := writeMessage(types.Message{
		Type:             types.ConnectionStatusMessage,
		ConnectionStatus: &types.StatusRow{Status: status, Message: message},
	})
	if err != nil {
		Fatal(fmt.Errorf("failed to write connection status: %s", err))
	}
}

// Writer emits protocol messages to stdout and persists every state
// checkpoint to the STATE_PATH file, so an aborted run can resume from the
// last checkpoint written.
type Writer struct{}

func (Writer) Schema(stream string, schema *types.TypeSchema, keyProperties []string) error {
	return writeMessage(types.Message{
		Type:   types.SchemaMessage,
		Schema: &types.SchemaRow{Stream: stream, Schema: schema, KeyProperties: keyProperties},
	})
}

func (Writer) Record(stream string, data map[string]any) error {
	return writeMessage(types.Message{
		Type:   types.RecordMessage,
		Record: &types.RecordRow{Stream: stream, Data: data},
	})
}

func (Writer) State(state *types.State) error {
	if err := writeMessage(types.Message{Type: types.StateMessage, State: state}); err != nil {
		return err
	}
	return saveState(state)
}

func saveState(state *types.State) error {
	path := viper.GetString(constants.StatePath)
	if path == "" {
		return nil
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %s", err)
	}
	return utils.WriteFileAtomic(path, data)
}
