package ports

import "imageresizer/internal/infrastructure/mq"

type EventPublisher interface {
	Publish(e mq.Event)
}
