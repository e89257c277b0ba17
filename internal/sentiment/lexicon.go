package sentiment

// Polarity weights in [-1, 1] for terms that commonly carry sentiment in
// product reviews. The table is deliberately small and hand-tuned; scoring
// quality depends on the thresholding policy in scorer.go more than on
// individual weights.
var lexicon = map[string]float64{
	// positive
	"amazing":     0.8,
	"awesome":     0.8,
	"excellent":   0.9,
	"perfect":     0.9,
	"perfectly":   0.7,
	"great":       0.7,
	"good":        0.5,
	"nice":        0.5,
	"love":        0.7,
	"loved":       0.7,
	"best":        0.8,
	"fantastic":   0.8,
	"wonderful":   0.8,
	"happy":       0.5,
	"satisfied":   0.6,
	"recommend":   0.6,
	"recommended": 0.6,
	"works":       0.3,
	"working":     0.3,
	"worth":       0.5,
	"fast":        0.4,
	"quick":       0.3,
	"quality":     0.2,
	"genuine":     0.5,
	"original":    0.4,
	"durable":     0.5,
	"comfortable": 0.5,
	"beautiful":   0.6,
	"value":       0.3,
	"reliable":    0.6,
	"smooth":      0.4,
	"sturdy":      0.5,
	"impressed":   0.7,
	"fine":        0.3,
	"useful":      0.5,
	"easy":        0.4,
	"thanks":      0.3,
	"super":       0.6,

	// negative
	"terrible":      -0.9,
	"horrible":      -0.9,
	"awful":         -0.9,
	"bad":           -0.6,
	"worst":         -0.9,
	"poor":          -0.6,
	"broke":         -0.6,
	"broken":        -0.7,
	"damaged":       -0.7,
	"defective":     -0.8,
	"fake":          -0.8,
	"cheap":         -0.4,
	"useless":       -0.8,
	"waste":         -0.7,
	"disappointed":  -0.7,
	"disappointing": -0.7,
	"slow":          -0.4,
	"late":          -0.3,
	"wrong":         -0.5,
	"missing":       -0.5,
	"refund":        -0.4,
	"return":        -0.3,
	"returned":      -0.4,
	"scam":          -0.9,
	"fraud":         -0.9,
	"stopped":       -0.4,
	"dead":          -0.6,
	"hate":          -0.7,
	"hated":         -0.7,
	"regret":        -0.6,
	"faulty":        -0.7,
	"flimsy":        -0.5,
	"uncomfortable": -0.5,
	"overpriced":    -0.5,
	"disgusting":    -0.8,
	"unusable":      -0.8,
	"problem":       -0.4,
	"problems":      -0.4,
	"issue":         -0.3,
	"issues":        -0.3,
}

// negators flip the sign of the next sentiment-bearing token within the
// negation window. Apostrophes are stripped during tokenization, so the
// contracted forms appear without them.
var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"neither": {},
	"nor":     {},
	"without": {},
	"dont":    {},
	"doesnt":  {},
	"didnt":   {},
	"isnt":    {},
	"wasnt":   {},
	"wont":    {},
	"cant":    {},
	"couldnt": {},
	"wouldnt": {},
	"hardly":  {},
	"barely":  {},
}

// intensifiers scale the next sentiment-bearing token.
var intensifiers = map[string]float64{
	"very":       1.5,
	"really":     1.5,
	"extremely":  1.5,
	"so":         1.3,
	"too":        1.2,
	"totally":    1.4,
	"absolutely": 1.5,
	"highly":     1.4,
	"quite":      1.2,
	"completely": 1.4,
}
