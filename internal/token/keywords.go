package token

import (
	"golang.org/x/text/cases"
)

// Keyword identities. Case in the constant names is purely cosmetic — the
// lexer always matches case-insensitively (see fold below) and normalizes
// the resulting Token's identity to this closed set, per spec.md's "keyword
// identity" data model: matching is case-insensitive but identity is
// canonical.
const (
	KwExplain Kind = firstKeyword + 1 + iota
	KwQuery
	KwPlan
	KwVacuum
	KwInto
	KwBegin
	KwDeferred
	KwImmediate
	KwExclusive
	KwTransaction
	KwCommit
	KwEnd
	KwRollback
	KwTo
	KwSavepoint
	KwRelease
	KwDetach
	KwAttach
	KwDatabase
	KwAs
	KwAnalyze
	KwReindex
	KwDrop
	KwIndex
	KwTable
	KwTrigger
	KwView
	KwIf
	KwExists
	KwPragma
	KwAlter
	KwRename
	KwColumn
	KwAdd

	// Recognized-but-unimplemented statement leads (spec.md §4.2): these
	// still need keyword identity so the lexer classifies them correctly
	// and the parser can report Unimplemented instead of Syntax.
	KwSelect
	KwInsert
	KwUpdate
	KwDelete
	KwCreate
	KwVirtual
	KwUsing
	KwFrom
	KwWhere
	KwValues
	KwSet

	// Literal-ish keywords used inside expressions.
	KwNull
	KwTrue
	KwFalse

	// The remainder of the closed vocabulary: engine keywords this
	// analyzer does not (yet) act on syntactically, but which must still
	// lex as keywords rather than plain identifiers, both because real
	// SQL files use them constantly (so `UnknownKeyword` must not fire
	// for them) and because the "did you mean" search needs the full
	// vocabulary to be useful.
	KwAbort
	KwAction
	KwAfter
	KwAll
	KwAnd
	KwAny
	KwAsc
	KwAutoincrement
	KwBetween
	KwBy
	KwCascade
	KwCase
	KwCast
	KwCheck
	KwCollate
	KwConflict
	KwConstraint
	KwCross
	KwCurrentDate
	KwCurrentTime
	KwCurrentTimestamp
	KwDefault
	KwDeferrable
	KwDesc
	KwDistinct
	KwEach
	KwElse
	KwEscape
	KwExcept
	KwExclude
	KwFail
	KwFilter
	KwFirst
	KwFollowing
	KwForeign
	KwFor
	KwFull
	KwGenerated
	KwGlob
	KwGroup
	KwGroups
	KwHaving
	KwIgnore
	KwIn
	KwIndexed
	KwInitially
	KwInner
	KwInstead
	KwIntersect
	KwIs
	KwIsnull
	KwJoin
	KwKey
	KwLast
	KwLeft
	KwLike
	KwLimit
	KwMatch
	KwMaterialized
	KwNatural
	KwNo
	KwNot
	KwNothing
	KwNotnull
	KwNulls
	KwOf
	KwOffset
	KwOn
	KwOr
	KwOrder
	KwOthers
	KwOuter
	KwOver
	KwPartition
	KwPreceding
	KwPrimary
	KwRaise
	KwRange
	KwRecursive
	KwReferences
	KwRegexp
	KwReplace
	KwRestrict
	KwRight
	KwRow
	KwRows
	KwSchema
	KwTemp
	KwTemporary
	KwThen
	KwTies
	KwUnbounded
	KwUnion
	KwUnique
	KwVacuumInto
	KwWhen
	KwWith
	KwWithout
	KwWindow

	lastKeyword
)

// keywords is the single source of truth for the closed SQL keyword
// vocabulary: the lowercase spelling maps to a Kind, and Kind maps back to
// the canonical upper-case name. Built once at package init and never
// mutated afterwards, per spec.md's "Global keyword table" design note.
var keywords = map[string]Kind{
	"explain":            KwExplain,
	"query":              KwQuery,
	"plan":               KwPlan,
	"vacuum":             KwVacuum,
	"into":               KwInto,
	"begin":              KwBegin,
	"deferred":           KwDeferred,
	"immediate":          KwImmediate,
	"exclusive":          KwExclusive,
	"transaction":        KwTransaction,
	"commit":             KwCommit,
	"end":                KwEnd,
	"rollback":           KwRollback,
	"to":                 KwTo,
	"savepoint":          KwSavepoint,
	"release":            KwRelease,
	"detach":             KwDetach,
	"attach":             KwAttach,
	"database":           KwDatabase,
	"as":                 KwAs,
	"analyze":            KwAnalyze,
	"reindex":            KwReindex,
	"drop":               KwDrop,
	"index":              KwIndex,
	"table":              KwTable,
	"trigger":            KwTrigger,
	"view":               KwView,
	"if":                 KwIf,
	"exists":             KwExists,
	"pragma":             KwPragma,
	"alter":              KwAlter,
	"rename":             KwRename,
	"column":             KwColumn,
	"add":                KwAdd,
	"select":             KwSelect,
	"insert":             KwInsert,
	"update":             KwUpdate,
	"delete":             KwDelete,
	"create":             KwCreate,
	"virtual":            KwVirtual,
	"using":              KwUsing,
	"from":               KwFrom,
	"where":              KwWhere,
	"values":             KwValues,
	"set":                KwSet,
	"null":               KwNull,
	"true":               KwTrue,
	"false":              KwFalse,
	"abort":              KwAbort,
	"action":             KwAction,
	"after":              KwAfter,
	"all":                KwAll,
	"and":                KwAnd,
	"any":                KwAny,
	"asc":                KwAsc,
	"autoincrement":      KwAutoincrement,
	"between":            KwBetween,
	"by":                 KwBy,
	"cascade":            KwCascade,
	"case":               KwCase,
	"cast":               KwCast,
	"check":              KwCheck,
	"collate":            KwCollate,
	"conflict":           KwConflict,
	"constraint":         KwConstraint,
	"cross":              KwCross,
	"current_date":       KwCurrentDate,
	"current_time":       KwCurrentTime,
	"current_timestamp":  KwCurrentTimestamp,
	"default":            KwDefault,
	"deferrable":         KwDeferrable,
	"desc":               KwDesc,
	"distinct":           KwDistinct,
	"each":               KwEach,
	"else":               KwElse,
	"escape":             KwEscape,
	"except":             KwExcept,
	"exclude":            KwExclude,
	"fail":               KwFail,
	"filter":             KwFilter,
	"first":              KwFirst,
	"following":          KwFollowing,
	"foreign":            KwForeign,
	"for":                KwFor,
	"full":               KwFull,
	"generated":          KwGenerated,
	"glob":                KwGlob,
	"group":              KwGroup,
	"groups":             KwGroups,
	"having":             KwHaving,
	"ignore":             KwIgnore,
	"in":                 KwIn,
	"indexed":            KwIndexed,
	"initially":          KwInitially,
	"inner":              KwInner,
	"instead":            KwInstead,
	"intersect":          KwIntersect,
	"is":                 KwIs,
	"isnull":             KwIsnull,
	"join":               KwJoin,
	"key":                KwKey,
	"last":               KwLast,
	"left":               KwLeft,
	"like":               KwLike,
	"limit":              KwLimit,
	"match":              KwMatch,
	"materialized":       KwMaterialized,
	"natural":            KwNatural,
	"no":                 KwNo,
	"not":                KwNot,
	"nothing":            KwNothing,
	"notnull":            KwNotnull,
	"nulls":              KwNulls,
	"of":                 KwOf,
	"offset":             KwOffset,
	"on":                 KwOn,
	"or":                 KwOr,
	"order":              KwOrder,
	"others":             KwOthers,
	"outer":              KwOuter,
	"over":               KwOver,
	"partition":          KwPartition,
	"preceding":          KwPreceding,
	"primary":            KwPrimary,
	"raise":              KwRaise,
	"range":              KwRange,
	"recursive":          KwRecursive,
	"references":         KwReferences,
	"regexp":             KwRegexp,
	"replace":            KwReplace,
	"restrict":           KwRestrict,
	"right":              KwRight,
	"row":                KwRow,
	"rows":               KwRows,
	"schema":             KwSchema,
	"temp":               KwTemp,
	"temporary":          KwTemporary,
	"then":               KwThen,
	"ties":               KwTies,
	"unbounded":          KwUnbounded,
	"union":              KwUnion,
	"unique":             KwUnique,
	"when":               KwWhen,
	"with":               KwWith,
	"without":            KwWithout,
	"window":             KwWindow,
}

var keywordNames map[Kind]string

var fold = cases.Fold(cases.Compact)

func init() {
	keywordNames = make(map[Kind]string, len(keywords))
	for lower, k := range keywords {
		keywordNames[k] = canonicalCase(lower)
	}
}

func canonicalCase(lower string) string {
	upper := make([]byte, len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper[i] = c
	}
	return string(upper)
}

// LookupKeyword performs a case-insensitive lookup against the closed
// keyword table using Unicode case folding (so "SELECT", "Select" and
// "select" all resolve to the same Kind).
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[fold.String(text)]
	return k, ok
}

// keywordName returns the canonical (upper-case) spelling for a keyword
// Kind.
func keywordName(k Kind) (string, bool) {
	name, ok := keywordNames[k]
	return name, ok
}

// AllKeywords returns the lowercase spelling of every recognized keyword,
// used by the "did you mean" search (internal/token.Suggest) and by tests
// asserting the vocabulary is complete.
func AllKeywords() []string {
	out := make([]string, 0, len(keywords))
	for lower := range keywords {
		out = append(out, lower)
	}
	return out
}
