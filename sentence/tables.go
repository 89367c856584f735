package sentence

// Terminator characters a sentence may end on (spec.md §4.7 rule 3),
// ASCII and full-width variants together.
var terminators = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'。': {}, '．': {}, '！': {}, '？': {},
}

// forbiddenBOS characters never start a new sentence: encountered right
// after a terminator, they're folded into the sentence that just ended
// instead (spec.md §4.7 rule 3's "skip forbidden-BOS characters").
var forbiddenBOS = map[rune]struct{}{
	'）': {}, ')': {},
	'」': {}, '』': {},
	'、': {}, ',': {}, '，': {},
	'”': {}, '’': {},
}

// parenClose maps an opening bracket rune to its closing rune. A
// terminator inside unbalanced brackets never ends a sentence (spec.md
// §4.7 rule 2).
var parenClose = map[rune]rune{
	'（': '）',
	'「': '」',
	'『': '』',
	'(': ')',
}

// parenOpenFor is the reverse index of parenClose, used to recognize a
// closing bracket while scanning.
var parenOpenFor = func() map[rune]rune {
	m := make(map[rune]rune, len(parenClose))
	for open, cl := range parenClose {
		m[cl] = open
	}
	return m
}()

// continuousPhrases lists, per terminator rune, the short strings that —
// if they're the non-forbidden content immediately following that
// terminator — mean the terminator doesn't actually end the sentence
// (spec.md §4.7 rule 3's "?です", "?って", "?という", ".と", ".や", ".の"
// examples, enumerated literally since no broader source table was
// available to mine further; see DESIGN.md's open-question note).
var continuousPhrases = map[rune][]string{
	'?': {"です", "って", "という"},
	'？': {"です", "って", "という"},
	'.': {"と", "や", "の"},
	'。': {"と", "や", "の"},
}
