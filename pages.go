package main

import "strings"

type PageInfo struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// monitoredPages is the registry of gaming pages the dashboard tracks. The
// page name is the partition key for every query and aggregate.
var monitoredPages = []PageInfo{
	{Name: "Juwa Slots", Emoji: "\U0001F3B0"},
	{Name: "Jackpot Casino", Emoji: "\U0001F4B0"},
	{Name: "Milk+T", Emoji: "\U0001F95B"},
	{Name: "Spin Royale", Emoji: "\U0001F451"},
	{Name: "Milky Treasure", Emoji: "\U0001F48E"},
	{Name: "Legit Spin Casino", Emoji: "♠️"},
	{Name: "Wealth Casino", Emoji: "\U0001F4B5"},
	{Name: "Cash Vault", Emoji: "\U0001F3E6"},
	{Name: "Game Vault Slots", Emoji: "\U0001F3AE"},
	{Name: "Lucky Firekirin", Emoji: "\U0001F432"},
	{Name: "Payout Day", Emoji: "\U0001F4C5"},
	{Name: "Ultra Panda", Emoji: "\U0001F43C"},
	{Name: "Dragons Destiny", Emoji: "\U0001F409"},
	{Name: "Orion Star", Emoji: "⭐"},
	{Name: "Daily Freebies", Emoji: "\U0001F381"},
	{Name: "Fortune Valley", Emoji: "\U0001F3DE️"},
	{Name: "Grill Girl", Emoji: "\U0001F467"},
	{Name: "Earners Pick", Emoji: "\U0001F4CC"},
	{Name: "Juwa 2.0", Emoji: "\U0001F3B0"},
	{Name: "Panda Master", Emoji: "\U0001F43C"},
	{Name: "Casino Royal", Emoji: "♣️"},
	{Name: "Diamond Riches", Emoji: "\U0001F48E"},
	{Name: "Cash Machine", Emoji: "\U0001F3E7"},
	{Name: "Win Star", Emoji: "\U0001F31F"},
	{Name: "Fire Kirin", Emoji: "\U0001F525"},
	{Name: "Ruby Riches", Emoji: "❤️"},
	{Name: "Vegas Sweeps", Emoji: "\U0001F3B2"},
	{Name: "Secret Spins", Emoji: "\U0001F575️"},
	{Name: "Mega Money Machine", Emoji: "\U0001F4B8"},
	{Name: "Mystery Millions", Emoji: "❓"},
	{Name: "Mafia City", Emoji: "\U0001F576️"},
	{Name: "VBlink", Emoji: "\U0001F517"},
	{Name: "Lucky Lady", Emoji: "\U0001F340"},
	{Name: "King of Pop", Emoji: "\U0001F451"},
	{Name: "Golden Treasure", Emoji: "\U0001F3C6"},
	{Name: "River Sweeps", Emoji: "\U0001F30A"},
	{Name: "Game Room", Emoji: "\U0001F3EA"},
	{Name: "Oyshee", Emoji: "\U0001F47B"},
	{Name: "Moolah", Emoji: "\U0001F4B2"},
	{Name: "Mega Spin", Emoji: "\U0001F300"},
	{Name: "Lucky Vegas Slots", Emoji: "\U0001F3B0"},
	{Name: "Yolo Slots", Emoji: "\U0001F525"},
	{Name: "Juwa", Emoji: "\U0001F3AF"},
	{Name: "River Monster", Emoji: "\U0001F40A"},
	{Name: "E-Games", Emoji: "\U0001F3AE"},
	{Name: "Big Winner", Emoji: "\U0001F3C6"},
}

var pageNameMap = buildPageNameMap()

func buildPageNameMap() map[string]string {
	m := make(map[string]string, len(monitoredPages)+4)
	for _, p := range monitoredPages {
		m[strings.ToLower(p.Name)] = p.Name
	}
	// Spellings seen in imported data that don't lowercase cleanly.
	m["milk + t"] = "Milk+T"
	m["e games"] = "E-Games"
	m["egames"] = "E-Games"
	return m
}

// normalizePageName maps free-form page spellings onto the canonical registry
// name, title-casing unknown names as a fallback.
func normalizePageName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return name
	}
	lower := strings.ToLower(trimmed)
	if canonical, ok := pageNameMap[lower]; ok {
		return canonical
	}

	words := strings.Split(lower, " ")
	for i, word := range words {
		switch word {
		case "2.0":
			words[i] = "2.0"
		case "t":
			words[i] = "T"
		case "vblink":
			words[i] = "VBlink"
		default:
			if word != "" {
				words[i] = strings.ToUpper(word[:1]) + word[1:]
			}
		}
	}
	joined := strings.Join(words, " ")
	joined = strings.ReplaceAll(joined, " + ", "+")
	joined = strings.ReplaceAll(joined, "Egames", "E-Games")
	return joined
}

func isKnownPage(name string) bool {
	for _, p := range monitoredPages {
		if p.Name == name {
			return true
		}
	}
	return false
}
