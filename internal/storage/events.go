package storage

import (
	"context"
	"encoding/json"
	"log"

	"civicgo/backend/internal/config"
	"civicgo/backend/internal/models"
)

// PublishComplaintEvent публікує подію життєвого циклу скарги в Redis Pub/Sub.
// Якщо Redis не налаштовано (наприклад, в адмін-CLI), публікація пропускається.
func (s *Service) PublishComplaintEvent(event models.ComplaintEvent) error {
	if s.Redis == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, config.ComplaintEventsChannel, string(payload)).Err()
}

// SubscribeComplaintEvents підписується на канал подій і повертає канал Go,
// який закривається при скасуванні контексту.
func (s *Service) SubscribeComplaintEvents(ctx context.Context) (<-chan models.ComplaintEvent, error) {
	pubsub := s.Redis.Subscribe(ctx, config.ComplaintEventsChannel)
	// Чекаємо підтвердження підписки, щоб не загубити перші повідомлення
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	events := make(chan models.ComplaintEvent)
	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event models.ComplaintEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("Error unmarshalling Redis message: %v", err)
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}
