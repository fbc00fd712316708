package scraping

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// FetchDocument issues a single GET for url and parses the body into a
// DOM-queryable document. No retries; any failure is terminal for this fetch
// and is reported as a wrapped ErrBadResponse.
func FetchDocument(ctx context.Context, url string, requestHeaders map[string]string) (*goquery.Document, error) {
	ctx, span := otel.Tracer("scraping").Start(ctx, "fetch_document")
	defer span.End()

	fetchID := uuid.NewString()

	var doc *goquery.Document
	var fetchErr error

	c := colly.NewCollector()
	c.OnRequest(InjectRequestHeaders(requestHeaders))
	c.OnRequest(AddOutgoingContext(ctx))
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("%w: status %d from %s: %v", ErrBadResponse, r.StatusCode, url, err)
	})
	c.OnResponse(LogResponses(c, fetchID))
	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode != http.StatusOK {
			fetchErr = fmt.Errorf("%w: got status code %d from %s", ErrBadResponse, r.StatusCode, url)
			return
		}
		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			fetchErr = fmt.Errorf("parsing document from %s: %w", url, err)
			return
		}
		doc = parsed
	})

	if err := c.Visit(url); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("%w: visiting %s: %v", ErrBadResponse, url, err)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrBadResponse, url, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: no parseable response from %s", ErrBadResponse, url)
	}
	return doc, nil
}

func LogResponses(c *colly.Collector, fetchID string) func(r *colly.Response) {
	return func(r *colly.Response) {
		cookies := c.Cookies(r.Request.URL.String())
		zap.L().Debug("response",
			zap.String("fetch_id", fetchID),
			zap.String("url", r.Request.URL.String()),
			zap.Int("status", r.StatusCode),
			zap.Int("body_bytes", len(r.Body)),
			zap.Any("cookies", cookies),
		)
	}
}

func InjectRequestHeaders(headers map[string]string) func(r *colly.Request) {
	return func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	}
}

func AddOutgoingContext(ctx context.Context) func(r *colly.Request) {
	return func(r *colly.Request) {
		go func() {
			<-ctx.Done()
			r.Abort()
		}()
	}
}
