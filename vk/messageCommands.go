package vk

import "regexp"

const (
	commandSeasons command = `сезон`
	commandHello   command = `начать|привет`
	commandHelp    command = `что умеешь`
	commandUnknown command = ``
)

type command string

func getCommand(message string) command {
	commands := []command{
		commandHelp,
		commandHello,
		commandSeasons,
	}

	for _, command := range commands {
		matched, _ := regexp.MatchString(string(command), message)

		if matched {
			return command
		}
	}

	return commandUnknown
}
