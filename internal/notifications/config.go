package notifications

import "github.com/albapepper/comeback-scout/internal/config"

// FromConfig builds every sender cfg enables. An empty slice means alert
// fan-out is disabled.
func FromConfig(cfg *config.Config) ([]Sender, error) {
	var senders []Sender
	if k := NewKafkaSender(cfg.KafkaBrokers, cfg.KafkaAlertsTopic); k != nil {
		senders = append(senders, k)
	}
	tg, err := NewTelegramSender(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return nil, err
	}
	if tg != nil {
		senders = append(senders, tg)
	}
	return senders, nil
}
