package telemetry

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures a Hub.
type Options struct {
	Debug           bool
	Out             io.Writer
	MaxErrors       int
	MaxMeasurements int
	SlowThreshold   time.Duration
}

// Hub is the Recorder used by the running service. It logs through logrus and
// keeps the error log and performance rings the debug panel reads.
type Hub struct {
	log    *logrus.Logger
	Errors *ErrorLog
	Perf   *Performance
}

func NewHub(opts Options) *Hub {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if opts.Out != nil {
		logger.SetOutput(opts.Out)
	} else {
		logger.SetOutput(os.Stdout)
	}
	logger.SetLevel(logrus.InfoLevel)
	if opts.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	h := &Hub{log: logger, Errors: NewErrorLog(opts.MaxErrors)}
	h.Perf = NewPerformance(opts.MaxMeasurements, opts.SlowThreshold, func(m Measurement) {
		h.entry().WithFields(logrus.Fields{"operation": m.Name, "duration": m.Duration}).
			Warn("slow operation detected")
	})
	return h
}

// Logger exposes the underlying logger for process-level messages.
func (h *Hub) Logger() *logrus.Logger { return h.log }

func (h *Hub) entry() *logrus.Entry {
	return h.log.WithField("app", "tokopedia-trends")
}

func (h *Hub) APICall(method, url string) {
	h.entry().WithFields(logrus.Fields{"method": strings.ToUpper(method), "url": url}).Debug("api call")
}

func (h *Hub) APIResponse(method, url string, status int, d time.Duration) {
	h.entry().WithFields(logrus.Fields{
		"method":   strings.ToUpper(method),
		"url":      url,
		"status":   status,
		"duration": d,
	}).Debug("api response")
	h.Perf.Record(Measurement{
		Name:     "api " + strings.ToUpper(method) + " " + url,
		Start:    time.Now().Add(-d),
		Duration: d,
		Meta:     map[string]any{"status": status},
	})
}

func (h *Hub) APIError(method, url string, status int, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	h.entry().WithError(err).WithFields(logrus.Fields{
		"method": strings.ToUpper(method),
		"url":    url,
		"status": status,
	}).Error("api error")
	h.Errors.LogAPIError(method, url, status, msg, nil)
}

func (h *Hub) ComponentError(component, operation string, err error) {
	h.entry().WithError(err).WithField("component", component).Errorf("%s failed", operation)
	h.Errors.LogComponentError(component, operation+" failed", err)
}

func (h *Hub) Measure(name string, d time.Duration, meta map[string]any) {
	h.Perf.Record(Measurement{Name: name, Start: time.Now().Add(-d), Duration: d, Meta: meta})
	h.entry().WithField("operation", name).Debugf("completed in %.2fms", millis(d))
}

func (h *Hub) Warn(msg string, fields map[string]any) {
	h.entry().WithFields(logrus.Fields(fields)).Warn(msg)
}
