package district

import "math/rand"

func pickRandom(candidates []District) *District {
	d := candidates[rand.Intn(len(candidates))]
	return &d
}
