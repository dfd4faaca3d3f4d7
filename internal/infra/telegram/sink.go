package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sink pushes HTML-formatted messages to a fixed set of chats. Delivery is
// best effort: each chat is attempted independently and failures are logged,
// never returned to the caller.
type Sink struct {
	bot     *tgbotapi.BotAPI
	chatIDs []int64
}

func NewSink(botToken string, chatIDs []int64) (*Sink, error) {
	if botToken == "" {
		log.Printf("telegram bot token not configured; notifications disabled")
		return &Sink{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Sink{bot: bot, chatIDs: chatIDs}, nil
}

func (s *Sink) Notify(message string) {
	if s.bot == nil {
		return
	}
	for _, chatID := range s.chatIDs {
		msg := tgbotapi.NewMessage(chatID, message)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := s.bot.Send(msg); err != nil {
			log.Printf("failed to send telegram message to %d: %v", chatID, err)
		}
	}
}
