package infra

import (
	"time"

	"github.com/fystack/bnbchain-adapter/pkg/common/config"
	"github.com/fystack/bnbchain-adapter/pkg/common/logger"
	"github.com/nats-io/nats.go"
)

func GetNATSConnection(natsConfig config.NATSConfig) (*nats.Conn, error) {
	natsURL := natsConfig.URL
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	return nats.Connect(natsURL,
		nats.Name("bnbchain-adapter"),
		nats.MaxReconnects(-1), // retry forever
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("Disconnected from NATS", "err", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed!")
		}),
		nats.ErrorHandler(NatsErrHandler),
	)
}

func NatsErrHandler(nc *nats.Conn, sub *nats.Subscription, natsErr error) {
	logger.Error("NATS Error", "err", natsErr)
	if natsErr == nats.ErrSlowConsumer && sub != nil {
		pendingMsgs, _, err := sub.Pending()
		if err != nil {
			logger.Error("Error getting pending messages", "err", err)
			return
		}
		logger.Error("Falling behind with pending messages on subject", "pending", pendingMsgs, "subject", sub.Subject)
	}
}
