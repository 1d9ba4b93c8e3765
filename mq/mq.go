package mq

import (
	"context"
	"encoding/json"
	"log"

	"savora/models"
	"savora/rdx"
	"savora/utils"
)

const eventsChannel = "domain-events"

// Emit publishes a domain event to Redis. Failures are logged, never fatal;
// events are advisory (notifications, counters), not part of any write path.
func Emit(ctx context.Context, eventName string, content models.Event) {
	content.EventID = utils.GetUUID()
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[mq] marshal %s failed: %v", eventName, err)
		return
	}
	if err := rdx.Conn.Publish(ctx, eventsChannel, data).Err(); err != nil {
		log.Printf("[mq] publish %s failed: %v", eventName, err)
	}
}

// StartEventWorker consumes the event channel. Currently it only logs; this
// is where order notifications would fan out.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[mq] event worker listening")

	for msg := range ch {
		var event models.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[mq] bad event payload: %v", err)
			continue
		}
		log.Printf("[mq] event %s %s %s", event.Method, event.EntityType, event.EntityId)
	}
}
