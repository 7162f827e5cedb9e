package main

import (
	"log/slog"
	"os"
	"racebot-wiki/config"
	"racebot-wiki/service"
	tg_api "racebot-wiki/telegram"
	vk_api "racebot-wiki/vk"
	"racebot-wiki/wiki"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load("../data.env"); err != nil {
		slog.Error("No .env file found")
	} else {
		slog.Info("Successfull read .env")
	}
}

func main() {

	log := setupLogger()

	conf, err := config.New()
	if err != nil {
		log.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	wikiAPI := wiki.NewWikiAPI()
	service := service.NewServiceStandings(wikiAPI)

	vkAPI, err := vk_api.NewVKAPI(conf.VkGroupToken, service)
	if err != nil {
		log.Error("Error vkApi object")
		os.Exit(1)
	}

	tgAPI, err := tg_api.NewTGAPI(conf.TgChatToken, service)
	if err != nil {
		log.Error("Error tgApi object")
		os.Exit(1)
	}

	go vkAPI.Run(log)
	tgAPI.Run(log)
}

func setupLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
