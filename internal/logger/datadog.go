package logger

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	dataDogQueueSize      = 1024
	dataDogBatchSize      = 100
	dataDogDefaultTimeout = 5 * time.Second
	dataDogDefaultSource  = "go"
)

// logSubmitter is the part of the DataDog logs API the writer uses.
type logSubmitter interface {
	SubmitLog(
		ctx context.Context,
		body []datadogV2.HTTPLogItem,
		o ...datadogV2.SubmitLogOptionalParameters,
	) (interface{}, *http.Response, error)
}

// DataDogWriter ships log lines to the DataDog log intake in the background.
// Lines are dropped when the queue is full so logging never blocks a request.
type DataDogWriter struct {
	api      logSubmitter
	ctx      context.Context //nolint:containedctx // carries the API key for every submit
	timeout  time.Duration
	queue    chan []byte
	source   string
	service  string
	tags     string
	hostname string
}

// NewDataDogWriter creates a DataDogWriter and starts its sender.
func NewDataDogWriter(cfg Log) (*DataDogWriter, error) {
	if cfg.DataDog.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{"apiKeyAuth": {Key: cfg.DataDog.APIKey}},
	)

	if cfg.DataDog.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.DataDog.Site})
	}

	api := datadogV2.NewLogsApi(datadog.NewAPIClient(datadog.NewConfiguration()))

	return newDataDogWriter(ctx, api, cfg), nil
}

func newDataDogWriter(ctx context.Context, api logSubmitter, cfg Log) *DataDogWriter {
	hostname, _ := os.Hostname()

	w := &DataDogWriter{
		api:      api,
		ctx:      ctx,
		timeout:  cfg.DataDog.Timeout,
		queue:    make(chan []byte, dataDogQueueSize),
		source:   cfg.DataDog.Source,
		service:  cfg.ServiceName,
		tags:     cfg.DataDog.Tags,
		hostname: hostname,
	}

	if w.timeout == 0 {
		w.timeout = dataDogDefaultTimeout
	}

	if w.source == "" {
		w.source = dataDogDefaultSource
	}

	go w.run()

	return w
}

// Write implements io.Writer. zerolog reuses p, so the line is copied.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	select {
	case w.queue <- append([]byte(nil), line...):
	default:
	}

	return len(p), nil
}

func (w *DataDogWriter) run() {
	batch := make([]datadogV2.HTTPLogItem, 0, dataDogBatchSize)

	for line := range w.queue {
		batch = append(batch, w.item(line))

	drain:
		for len(batch) < dataDogBatchSize {
			select {
			case next := <-w.queue:
				batch = append(batch, w.item(next))
			default:
				break drain
			}
		}

		w.submit(batch)
		batch = batch[:0]
	}
}

func (w *DataDogWriter) item(line []byte) datadogV2.HTTPLogItem {
	item := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(w.source),
		Hostname: datadog.PtrString(w.hostname),
		Message:  string(line),
		Service:  datadog.PtrString(w.service),
	}

	if w.tags != "" {
		item.Ddtags = datadog.PtrString(w.tags)
	}

	return item
}

func (w *DataDogWriter) submit(batch []datadogV2.HTTPLogItem) {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	if _, resp, err := w.api.SubmitLog(ctx, batch); err != nil {
		ErrorHandler(err)
	} else if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
