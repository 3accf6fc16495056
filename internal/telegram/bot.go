package telegram

import (
	"fmt"
	"net/http"
	"strconv"

	tb "gopkg.in/telebot.v3"
)

type BotInfo struct {
	Username string
	Chat     string
}

// Verify checks the bot token with getMe and makes sure the bot can see the chat.
// An empty apiURL means the public Bot API.
func Verify(apiURL, token, chatID string, client *http.Client) (BotInfo, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return BotInfo{}, fmt.Errorf("parse chat id=%s: %w", chatID, err)
	}

	bot, err := tb.NewBot(tb.Settings{
		URL:    apiURL,
		Token:  token,
		Client: client,
	})
	if err != nil {
		return BotInfo{}, fmt.Errorf("create telegram bot: %w", err)
	}

	chat, err := bot.ChatByID(id)
	if err != nil {
		return BotInfo{}, fmt.Errorf("get chat id=%d: %w", id, err)
	}

	res := BotInfo{
		Username: bot.Me.Username,
		Chat:     chat.Title,
	}
	if res.Chat == "" {
		res.Chat = chat.Username
	}

	return res, nil
}
