package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hdr13/ecommerce-api/internal/logging"
	"github.com/hdr13/ecommerce-api/internal/mykafka"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// publish sends a domain event with a short deadline. Delivery failures are
// logged and never fail the request.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}

func listMeta(page, limit, offset int, total int64) map[string]any {
	return map[string]any{
		"page":        page,
		"size":        limit,
		"total":       total,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
		"has_prev":    page > 1,
		"has_next":    int64(offset+limit) < total,
	}
}
