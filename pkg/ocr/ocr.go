package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/krex38/subgate/model"
	"github.com/otiai10/gosseract/v2"
	"golang.org/x/sync/semaphore"
)

// latin letters, digits and space only; everything else is noise for the
// phrase matcher anyway
const charWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 "

// Engine extracts text from screenshots with tesseract. Extractions are
// bounded both in parallelism and in time so one slow call cannot stall
// unrelated requests.
type Engine struct {
	language string
	timeout  time.Duration
	sem      *semaphore.Weighted
	run      func(imageBytes []byte) (string, error)
}

func New(language string, timeout time.Duration, concurrency int64) *Engine {
	if concurrency <= 0 {
		concurrency = 1
	}
	e := &Engine{
		language: language,
		timeout:  timeout,
		sem:      semaphore.NewWeighted(concurrency),
	}
	e.run = e.recognize
	return e
}

func (e *Engine) Extract(ctx context.Context, imageBytes []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%w: %v", model.OcrEngineErr, err)
	}

	type outcome struct {
		text string
		err  error
	}
	// the recognize call itself cannot be interrupted; run it aside and give
	// up on deadline instead of hanging the caller. The permit stays held by
	// the worker until tesseract actually returns, so an abandoned call keeps
	// counting against the concurrency bound.
	ch := make(chan outcome, 1)
	go func() {
		defer e.sem.Release(1)
		text, err := e.run(imageBytes)
		ch <- outcome{text: text, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", model.OcrEngineErr, ctx.Err())
	case o := <-ch:
		if o.err != nil {
			return "", fmt.Errorf("%w: %v", model.OcrEngineErr, o.err)
		}
		return o.text, nil
	}
}

func (e *Engine) recognize(imageBytes []byte) (text string, err error) {
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(e.language); err != nil {
		return "", err
	}
	if err := client.SetWhitelist(charWhitelist); err != nil {
		return "", err
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO_OSD); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(imageBytes); err != nil {
		return "", err
	}
	return client.Text()
}
