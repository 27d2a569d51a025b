package auth

import (
	"bufio"
	_ "embed"
	"strings"
)

//go:embed data/not_allow_nickname.txt
var notAllowNicknameFile string

var notAllowNicknames = loadNicknames(notAllowNicknameFile)

func loadNicknames(file string) map[string]struct{} {
	nicknames := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(file))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		nicknames[strings.ToLower(line)] = struct{}{}
	}
	return nicknames
}

// IsNicknameAllowed checks the nickname against the reserved words list, case insensitive
func IsNicknameAllowed(nickname string) bool {
	_, found := notAllowNicknames[strings.ToLower(strings.TrimSpace(nickname))]
	return !found
}
