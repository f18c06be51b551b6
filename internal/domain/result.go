package domain

// ResultToken is one of the 13 closed-vocabulary result tokens.
type ResultToken string

// Result tokens (spec.md §6, bit-exact). Token names below spell the
// literal score (e.g. "0-1F" is a black win, by forfeit).
const (
	ResultWhiteWins     ResultToken = "1-0"
	ResultBlackWins     ResultToken = "0-1"
	ResultDraw          ResultToken = "1/2-1/2"
	ResultOngoing       ResultToken = "*"
	ResultBlackWinForfeit ResultToken = "0-1F" // black wins, white forfeited
	ResultWhiteWinForfeit ResultToken = "1-0F" // white wins, black forfeited
	ResultBlackWinDefault ResultToken = "0-1D" // black wins, white defaulted
	ResultWhiteWinDefault ResultToken = "1-0D" // white wins, black defaulted
	ResultAdjourned       ResultToken = "ADJ"
	ResultBlackWinTimeout ResultToken = "0-1T" // black wins, white timed out
	ResultWhiteWinTimeout ResultToken = "1-0T" // white wins, black timed out
	ResultDoubleForfeit   ResultToken = "0-0"
	ResultCancelled       ResultToken = "CANC"
)

// ResultType disambiguates *how* a token's outcome was produced, per
// spec.md §4.2 step 1 (the "type-set compatible with the token").
type ResultType string

// Result types.
const (
	ResultTypeStandard      ResultType = "standard"
	ResultTypeWhiteForfeit  ResultType = "white_forfeit"
	ResultTypeBlackForfeit  ResultType = "black_forfeit"
	ResultTypeWhiteDefault  ResultType = "white_default"
	ResultTypeBlackDefault  ResultType = "black_default"
	ResultTypeWhiteTimeout  ResultType = "white_timeout"
	ResultTypeBlackTimeout  ResultType = "black_timeout"
	ResultTypeDoubleForfeit ResultType = "double_forfeit"
	ResultTypeCancelled     ResultType = "cancelled"
	ResultTypeAdjourned     ResultType = "adjourned"
	ResultTypeOngoing       ResultType = "ongoing"
)

// resultVocabulary is the full set of recognised tokens.
var resultVocabulary = map[ResultToken]bool{
	ResultWhiteWins: true, ResultBlackWins: true, ResultDraw: true,
	ResultOngoing: true, ResultBlackWinForfeit: true, ResultWhiteWinForfeit: true,
	ResultBlackWinDefault: true, ResultWhiteWinDefault: true, ResultAdjourned: true,
	ResultBlackWinTimeout: true, ResultWhiteWinTimeout: true,
	ResultDoubleForfeit: true, ResultCancelled: true,
}

// ValidResultToken reports whether tok is one of the 13 closed tokens.
func ValidResultToken(tok ResultToken) bool { return resultVocabulary[tok] }

// resultTypeCompatibility maps each token to the set of result types that
// may legally accompany it (spec.md §4.2 step 1, e.g. "1-0" <-> {standard,
// black_forfeit, black_default} -- white wins either by standard play, or
// because black forfeited/defaulted without a dedicated "1-0F"/"1-0D"
// token having been used).
var resultTypeCompatibility = map[ResultToken]map[ResultType]bool{
	ResultWhiteWins: {ResultTypeStandard: true, ResultTypeBlackForfeit: true, ResultTypeBlackDefault: true},
	ResultBlackWins: {ResultTypeStandard: true, ResultTypeWhiteForfeit: true, ResultTypeWhiteDefault: true},
	ResultDraw:      {ResultTypeStandard: true},
	ResultOngoing:   {ResultTypeOngoing: true},
	ResultBlackWinForfeit: {ResultTypeWhiteForfeit: true},
	ResultWhiteWinForfeit: {ResultTypeBlackForfeit: true},
	ResultBlackWinDefault: {ResultTypeWhiteDefault: true},
	ResultWhiteWinDefault: {ResultTypeBlackDefault: true},
	ResultAdjourned:       {ResultTypeAdjourned: true},
	ResultBlackWinTimeout: {ResultTypeWhiteTimeout: true},
	ResultWhiteWinTimeout: {ResultTypeBlackTimeout: true},
	ResultDoubleForfeit:   {ResultTypeDoubleForfeit: true},
	ResultCancelled:       {ResultTypeCancelled: true},
}

// ResultTypeCompatible reports whether rt may accompany tok. A nil rt is
// always compatible (the type is optional per spec.md §4.2 step 1).
func ResultTypeCompatible(tok ResultToken, rt *ResultType) bool {
	if rt == nil {
		return true
	}
	set, ok := resultTypeCompatibility[tok]
	if !ok {
		return false
	}
	return set[*rt]
}

// resultPoints holds the (white, black) point award for a decided token.
type resultPoints struct {
	white, black float64
}

var resultPointTable = map[ResultToken]resultPoints{
	ResultWhiteWins:       {1, 0},
	ResultBlackWins:       {0, 1},
	ResultDraw:            {0.5, 0.5},
	ResultOngoing:         {0, 0},
	ResultBlackWinForfeit: {0, 1},
	ResultWhiteWinForfeit: {1, 0},
	ResultBlackWinDefault: {0, 1},
	ResultWhiteWinDefault: {1, 0},
	ResultAdjourned:       {0, 0},
	ResultBlackWinTimeout: {0, 1},
	ResultWhiteWinTimeout: {1, 0},
	ResultDoubleForfeit:   {0, 0},
	ResultCancelled:       {0, 0},
}

// Points returns the (white, black) score contribution of a decided
// token, per the table in spec.md §6. Ongoing and Adjourned contribute
// nothing and are excluded from standings regardless of this return
// value -- callers must check IsScored first.
func (tok ResultToken) Points() (white, black float64) {
	p := resultPointTable[tok]
	return p.white, p.black
}

// IsScored reports whether a decided game with this token contributes to
// standings (excludes Ongoing and Adjourned, per spec.md §6/§4.3).
func (tok ResultToken) IsScored() bool {
	return tok != ResultOngoing && tok != ResultAdjourned
}

// RequiresApproval reports whether recording this token moves a game into
// Pending-Approval rather than directly to Decided (spec.md §4.2 step 5).
func (tok ResultToken) RequiresApproval() bool {
	switch tok {
	case ResultBlackWinForfeit, ResultWhiteWinForfeit,
		ResultBlackWinDefault, ResultWhiteWinDefault,
		ResultDoubleForfeit, ResultCancelled:
		return true
	default:
		return false
	}
}
