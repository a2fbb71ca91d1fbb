package view

var quotes = []string{
	"Success is the sum of small efforts repeated day in and day out.",
	"The expert in anything was once a beginner.",
	"Don't put off tomorrow what you can do today.",
	"Education is the most powerful weapon which you can use to change the world.",
	"The beautiful thing about learning is that no one can take it away from you.",
	"Believe you can and you're halfway there.",
	"Success is not final, failure is not fatal: it is the courage to continue that counts.",
	"The only way to do great work is to love what you do.",
	"Your limitation is only your imagination.",
	"Push yourself, because no one else is going to do it for you.",
}

// Quote picks a motivational line; intn is usually rand.IntN.
func Quote(intn func(n int) int) string {
	return quotes[intn(len(quotes))]
}
