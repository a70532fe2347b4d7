package connector

import (
	"time"

	"github.com/labstack/gommon/log"
	"github.com/nats-io/nats.go"
)

func GetNatsConnector(url string, name string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warnf("NATS: соединение потеряно: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("NATS: переподключение к %s", nc.ConnectedUrl())
		}),
	)
}
