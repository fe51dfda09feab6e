package runner

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// AVL prints the neutral point in its stability listing either as
// "Neutral point  Xnp = ..." or normalized as "x/c = ...".
var neutralPointPattern = regexp.MustCompile(
	`Neutral point\s*(?::\s*)?(?:Xnp|x/c)\s*=\s*([-+0-9.eE]+)`)

// ExtractNeutralPoint scans a stability listing for the neutral point
// value.
func ExtractNeutralPoint(text string) (float64, bool) {
	match := neutralPointPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CaptureNeutralPoint polls stabilityFile until AVL writes the neutral
// point, then records it to summaryFile as "Xnp\n<value>\n". The poll
// interval is fixed; the context bounds the wait.
func CaptureNeutralPoint(ctx context.Context, stabilityFile, summaryFile string, log *zap.Logger) (float64, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		data, err := os.ReadFile(stabilityFile)
		if err == nil {
			if v, ok := ExtractNeutralPoint(string(data)); ok {
				summary := fmt.Sprintf("Xnp\n%.6f\n", v)
				if err := os.WriteFile(summaryFile, []byte(summary), 0o644); err != nil {
					log.Warn("failed to write neutral point summary",
						zap.String("path", summaryFile), zap.Error(err))
				} else {
					log.Info("neutral point captured",
						zap.Float64("xnp", v), zap.String("summary", summaryFile))
				}
				return v, nil
			}
		} else if !os.IsNotExist(err) {
			log.Debug("stability file not readable yet", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("timed out waiting for neutral point in %s: %w", stabilityFile, ctx.Err())
		case <-ticker.C:
		}
	}
}
