package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"racebot-wiki/models"
	navtoken "racebot-wiki/token"
)

// Telegram answers this error text when an edit carries the exact content
// already displayed; for menu navigation that is a no-op, not a failure.
const notModifiedMarker = "message is not modified"

const seasonsPerRow = 5

type navigationService interface {
	GetHelloMessage() string
	GetHelpMessage() string
	GetSeasonsMenu() (string, []models.Choice)
	GetSeasonRacesMenu(ctx context.Context, year int) (string, []models.Choice)
	GetStandingsMessage(ctx context.Context, year, round int) string
}

type TgAPI struct {
	bot               *telego.Bot
	updates           <-chan telego.Update
	navigationService navigationService
	handler           *th.BotHandler
}

func NewTGAPI(token string, navigationService navigationService) (*TgAPI, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("error create tg bot from token: %w", err)
	}

	updates, err := bot.UpdatesViaLongPolling(nil)
	if err != nil {
		return nil, fmt.Errorf("error taking updates from longpool: %w", err)
	}

	return &TgAPI{bot: bot, updates: updates, navigationService: navigationService}, nil
}

var newBotHandler = th.NewBotHandler

func (tg *TgAPI) Run(log *slog.Logger) {

	var err error
	tg.handler, err = newBotHandler(tg.bot, tg.updates)
	if err != nil {
		log.Error("Error creating bot handler", slog.Any("error", err))
		return
	}
	tg.messageHandler(log)
	tg.callbackHandler(log)
	tg.handler.Start()
	defer tg.handler.Stop()
	defer tg.bot.StopLongPolling()
}

func (tg *TgAPI) messageHandler(log *slog.Logger) {

	tg.handler.Handle(func(bot *telego.Bot, update telego.Update) {

		log.Info(
			"MESSAGE info",
			slog.Int("peer_id", int(update.Message.Chat.ID)),
			slog.String("text", update.Message.Text))

		_, err := bot.SendMessage(tu.Message(
			tu.ID(update.Message.Chat.ID),
			tg.navigationService.GetHelloMessage(),
		))
		if err != nil {
			log.Error("Error sending hello message", slog.Any("error", err))
		}
	}, th.CommandEqual("start"))

	tg.handler.Handle(func(bot *telego.Bot, update telego.Update) {

		log.Info(
			"MESSAGE info",
			slog.Int("peer_id", int(update.Message.Chat.ID)),
			slog.String("text", update.Message.Text))

		_, err := bot.SendMessage(tu.Message(
			tu.ID(update.Message.Chat.ID),
			tg.navigationService.GetHelpMessage(),
		))
		if err != nil {
			log.Error("Error sending help message", slog.Any("error", err))
		}
	}, th.CommandEqual("help"))

	tg.handler.Handle(func(bot *telego.Bot, update telego.Update) {

		log.Info(
			"MESSAGE info",
			slog.Int("peer_id", int(update.Message.Chat.ID)),
			slog.String("text", update.Message.Text))

		text, choices := tg.navigationService.GetSeasonsMenu()

		message := tu.Message(tu.ID(update.Message.Chat.ID), text)
		if len(choices) > 0 {
			message = message.WithReplyMarkup(makeInlineKeyboard(choices, seasonsPerRow))
		}

		if _, err := bot.SendMessage(message); err != nil {
			log.Error("Error sending seasons menu", slog.Any("error", err))
		}
	}, th.CommandEqual("standings"))
}

func (tg *TgAPI) callbackHandler(log *slog.Logger) {

	tg.handler.Handle(func(bot *telego.Bot, update telego.Update) {

		query := update.CallbackQuery
		ctx := context.Background()

		log.Info(
			"EVENT info",
			slog.Int("peer_id", int(query.Message.Chat.ID)),
			slog.String("data", query.Data))

		if err := bot.AnswerCallbackQuery(tu.CallbackQuery(query.ID)); err != nil {
			log.Error("Error answering callback query", slog.Any("error", err))
		}

		navToken := navtoken.Decode(query.Data)

		switch navToken.Kind {

		case navtoken.KindSeason:
			text, choices := tg.navigationService.GetSeasonRacesMenu(ctx, navToken.Year)

			var keyboard *telego.InlineKeyboardMarkup
			if len(choices) > 0 {
				keyboard = makeInlineKeyboard(choices, 1)
			}

			tg.editMessage(log, query.Message.Chat.ID, query.Message.MessageID, text, keyboard)

		case navtoken.KindRace:
			text := tg.navigationService.GetStandingsMessage(ctx, navToken.Year, navToken.Round)
			tg.editMessage(log, query.Message.Chat.ID, query.Message.MessageID, text, nil)

		default:
			log.Info("Кнопка с нечитаемым токеном", slog.String("data", query.Data))
			tg.editMessage(log, query.Message.Chat.ID, query.Message.MessageID,
				"Не смог разобрать нажатую кнопку. Начни сначала: /standings", nil)
		}
	}, th.AnyCallbackQueryWithMessage())
}

// editMessage rewrites the menu message in place so one chat message walks
// the whole season -> race -> standings flow. The "not modified" answer from
// Telegram is swallowed.
func (tg *TgAPI) editMessage(log *slog.Logger, chatID int64, messageID int, text string, keyboard *telego.InlineKeyboardMarkup) {
	params := &telego.EditMessageTextParams{
		ChatID:    tu.ID(chatID),
		MessageID: messageID,
		Text:      text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := tg.bot.EditMessageText(params)
	if err != nil {
		if strings.Contains(err.Error(), notModifiedMarker) {
			log.Debug("Edit skipped, content unchanged", slog.Int("message_id", messageID))
			return
		}
		log.Error("Error editing message", slog.Int("message_id", messageID), slog.Any("error", err))
	}
}

func makeInlineKeyboard(choices []models.Choice, perRow int) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, (len(choices)+perRow-1)/perRow)
	row := make([]telego.InlineKeyboardButton, 0, perRow)

	for _, choice := range choices {
		row = append(row, tu.InlineKeyboardButton(choice.Label).WithCallbackData(choice.Token))

		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return &telego.InlineKeyboardMarkup{InlineKeyboard: rows}
}
