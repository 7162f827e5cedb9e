package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/SevereCloud/vksdk/v2/api/params"
	"github.com/SevereCloud/vksdk/v2/events"
	"github.com/SevereCloud/vksdk/v2/longpoll-bot"

	"racebot-wiki/models"
	navtoken "racebot-wiki/token"
)

type navigationService interface {
	GetHelloMessage() string
	GetHelpMessage() string
	GetSeasonsMenu() (string, []models.Choice)
	GetSeasonRacesMenu(ctx context.Context, year int) (string, []models.Choice)
	GetStandingsMessage(ctx context.Context, year, round int) string
}

type VkAPI struct {
	lp                *longpoll.LongPoll
	navigationService navigationService
}

func NewVKAPI(token string, navigationService navigationService) (*VkAPI, error) {
	vk := api.NewVK(token)

	group, err := vk.GroupsGetByID(api.Params{})
	if err != nil {
		return nil, fmt.Errorf("error groups get by id: %w", err)
	}

	lp, err := longpoll.NewLongPoll(vk, group[0].ID)
	if err != nil {
		return nil, fmt.Errorf("error creating new log pool: %w", err)
	}

	return &VkAPI{lp: lp, navigationService: navigationService}, nil
}

func (vk *VkAPI) Run(log *slog.Logger) {
	// Each event gets its own goroutine: a season scan waits on the request
	// limiter for seconds and must not stall other users' long-poll events.
	vk.lp.Goroutine(true)

	vk.messageHandler(log)
	vk.eventHandler(log)

	log.Info("Start longpoll")
	if err := vk.lp.Run(); err != nil {
		log.Error("%w", err)
	}
}

func (vk *VkAPI) messageHandler(log *slog.Logger) {
	vk.lp.MessageNew(func(_ context.Context, obj events.MessageNewObject) {
		log.Info(
			"MESSAGE info",
			slog.Int("peer_id", obj.Message.PeerID),
			slog.String("text", obj.Message.Text))

		messageText := strings.ToLower(obj.Message.Text)

		switch getCommand(messageText) {

		case commandHello:
			err := sendMessageToUser(vk.navigationService.GetHelloMessage(), obj.Message.PeerID, vk.lp.VK, nil)
			if err != nil {
				log.Error("Error with sending message-answer to command `commandHello` to user", slog.Int("peer_id", obj.Message.PeerID), slog.Any("error", err))
			}

		case commandHelp:
			err := sendMessageToUser(vk.navigationService.GetHelpMessage(), obj.Message.PeerID, vk.lp.VK, nil)
			if err != nil {
				log.Error("Error with sending message-answer to command `commandHelp` to user", slog.Int("peer_id", obj.Message.PeerID), slog.Any("error", err))
			}

		case commandSeasons:
			vk.sendSeasonsPage(log, obj.Message.PeerID, 1)

		default:
			log.Info("Команда в сообщении не распознана", slog.String("text", obj.Message.Text))
		}
	})
}

func (vk *VkAPI) eventHandler(log *slog.Logger) {
	vk.lp.MessageEvent(func(ctx context.Context, obj events.MessageEventObject) {

		log.Info(
			"EVENT info",
			slog.Int("peer_id", obj.PeerID),
			slog.Any("payload", obj.Payload))

		// ack right away, VK drops the callback after a short window and the
		// season scan takes longer than that
		vk.answerEvent(log, obj)

		payloadCommand, err := extractCommand(string(obj.Payload))
		if err != nil || payloadCommand == nil {
			log.Error("Error reading payload", slog.Any("error", err))
			return
		}

		if numPage, ok := parseSeasonsPage(*payloadCommand); ok {
			vk.sendSeasonsPage(log, obj.PeerID, numPage)
			return
		}

		tok := navtoken.Decode(*payloadCommand)

		switch tok.Kind {

		case navtoken.KindSeason:
			text, choices := vk.navigationService.GetSeasonRacesMenu(ctx, tok.Year)

			var strKb *string
			if len(choices) > 0 {
				strKb = marshalKeyboard(log, makeRacesKeyboard(choices))
			}

			err := sendMessageToUser(text, obj.PeerID, vk.lp.VK, strKb)
			if err != nil {
				log.Error("Error with sending race list to user", slog.Int("peer_id", obj.PeerID), slog.Any("error", err))
			}

		case navtoken.KindRace:
			text := vk.navigationService.GetStandingsMessage(ctx, tok.Year, tok.Round)
			err := sendMessageToUser(text, obj.PeerID, vk.lp.VK, nil)
			if err != nil {
				log.Error("Error with sending standings to user", slog.Int("peer_id", obj.PeerID), slog.Any("error", err))
			}

		default:
			log.Info("Кнопка с нечитаемым токеном", slog.String("payload", *payloadCommand))
			err := sendMessageToUser("Не смог разобрать нажатую кнопку. Начни сначала: напиши мне \"сезоны\".", obj.PeerID, vk.lp.VK, nil)
			if err != nil {
				log.Error("Error with sending restart prompt to user", slog.Int("peer_id", obj.PeerID), slog.Any("error", err))
			}
		}
	})
}

func (vk *VkAPI) sendSeasonsPage(log *slog.Logger, peerID, numPage int) {
	text, choices := vk.navigationService.GetSeasonsMenu()

	var strKb *string
	if len(choices) > 0 {
		kb, err := makeSeasonsKeyboard(choices, numPage)
		if err != nil {
			log.Error("Error making keyboard", slog.Any("error", err))
			return
		}
		strKb = marshalKeyboard(log, kb)
	}

	if err := sendMessageToUser(text, peerID, vk.lp.VK, strKb); err != nil {
		log.Error("Error with sending seasons menu to user", slog.Int("peer_id", peerID), slog.Any("error", err))
	}
}

func (vk *VkAPI) answerEvent(log *slog.Logger, obj events.MessageEventObject) {
	err := sendEventMessageToUser(vk.lp.VK, obj.PeerID, obj.EventID, obj.UserID)
	if err != nil {
		log.Error("Error with sending event-answer to user", slog.Int("peer_id", obj.PeerID), slog.Any("error", err))
	}
}

func sendMessageToUser(messageToUser string, peerID int, vk *api.VK, keyboard *string) error {
	b := params.NewMessagesSendBuilder()
	b.Message(messageToUser)
	b.RandomID(0)
	b.PeerID(peerID)

	if keyboard != nil {
		b.Keyboard(*keyboard)
	}

	msgId, err := vk.MessagesSend(b.Params)
	if err != nil {
		return fmt.Errorf("error sending message to user: %w", err)
	}
	slog.Info("Message-answer sended", slog.Int("id", msgId))
	return nil
}

func sendEventMessageToUser(vk *api.VK, peerID int, eventID string, userID int) error {
	prms := params.NewMessagesSendMessageEventAnswerBuilder()
	prms.PeerID(peerID)
	prms.EventID(eventID)
	prms.UserID(userID)

	resp, err := vk.MessagesSendMessageEventAnswer(prms.Params)
	if err != nil {
		return fmt.Errorf("error sending message to user: %w", err)
	}
	slog.Info("Responce sended MessageEvent", slog.Int("id", resp))
	return nil
}

func extractCommand(payload string) (*string, error) {
	var pl Payload
	if payload != "" {
		err := json.Unmarshal([]byte(payload), &pl)
		if err != nil {
			return nil, fmt.Errorf("error unmarshal command in payload message: %w", err)
		}
		slog.Debug("Command from paylpad", slog.String("Command", pl.Command))
		return &pl.Command, nil
	} else {
		return nil, nil
	}
}

func parseSeasonsPage(command string) (int, bool) {
	if !seasonsPageRe.MatchString(command) {
		return 0, false
	}

	numPage, err := strconv.Atoi(strings.TrimPrefix(command, "seasonsPage_"))
	if err != nil {
		return 0, false
	}
	return numPage, true
}

func marshalKeyboard(log *slog.Logger, kb Kb) *string {
	jsKb, err := json.Marshal(kb)
	if err != nil {
		log.Error("Error marshal keyboard", slog.Any("error", err))
		return nil
	}

	strKb := string(jsKb)
	return &strKb
}
