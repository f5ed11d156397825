package mq

import (
	"context"
	"encoding/json"
	"log"

	"orrery/models"
	"orrery/rdx"
)

const bookingChannel = "booking-events"

// BookingEvent is the message published on every booking mutation.
type BookingEvent struct {
	Event     string `json:"event"`
	BookingID string `json:"bookingId"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// EmitBookingEvent publishes to Redis. A publish failure is logged, never
// surfaced: event delivery is best-effort and must not fail the mutation.
func EmitBookingEvent(ctx context.Context, event string, b models.Booking) {
	data, err := json.Marshal(BookingEvent{
		Event:     event,
		BookingID: b.ID,
		Date:      b.Date,
		Status:    b.Status,
	})
	if err != nil {
		log.Printf("[mq] marshal %s: %v", event, err)
		return
	}
	if err := rdx.Conn.Publish(ctx, bookingChannel, data).Err(); err != nil {
		log.Printf("[mq] publish %s: %v", event, err)
	}
}

// StartBookingWorker consumes booking events. Currently it only logs them;
// this is the hook point for host notifications.
func StartBookingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, bookingChannel)
	ch := sub.Channel()

	log.Println("[mq] listening for booking events")
	for msg := range ch {
		var ev BookingEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("[mq] bad event payload: %v", err)
			continue
		}
		log.Printf("[mq] %s booking=%s date=%s status=%s", ev.Event, ev.BookingID, ev.Date, ev.Status)
	}
}
