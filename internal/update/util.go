package update

import "github.com/sandeepkv93/tasklist/internal/app"

func isWarning(n app.Notice) bool {
	return n.Level == app.LevelWarning
}
