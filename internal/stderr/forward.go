package stderr

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Forward logs each non-empty line read from r until EOF.
func Forward(r io.Reader, logger zerolog.Logger) {
	logger = logger.With().Str("component", "stderr").Logger()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			logger.Warn().Msg(line)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Debug().Err(err).Msg("stderr capture stopped")
	}
}
