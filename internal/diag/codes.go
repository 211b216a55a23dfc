package diag

// Stable diagnostic codes, per spec §6.5 and §8. Parser codes are
// ERR-SYN-###, semantic/codegen codes are ERR-SEM-###, typing codes are
// ERR-TYP-###, and warnings are WARN-SEM-###.
const (
	// Parser.
	ErrSynUnexpectedToken  = "ERR-SYN-100"
	ErrSynExpectedStmt     = "ERR-SYN-101" // bare identifier at statement position
	ErrSynUnclosedBlock    = "ERR-SYN-102"
	ErrSynBadCondition     = "ERR-SYN-103" // if/while condition not "operand cmp operand"
	ErrSynUnclosedString   = "ERR-SYN-104"
	WarnSynEmptyVector     = "WARN-SEM-230" // kept under the SEM family per spec §9's ERR-SEM-230 naming
	ErrSynMalformedNumber  = "ERR-SYN-105"
	ErrSynUnexpectedEOF    = "ERR-SYN-106"
	WarnSynNoMathDest      = "WARN-SEM-003"

	// Semantic analyzer.
	ErrSemVectorUnsupported = "ERR-SEM-230" // using Vec in HIR
	ErrSemStartCount        = "ERR-SEM-301" // zero or many is_start functions
	ErrSemBreakOutsideLoop  = "ERR-SEM-310"
	ErrSemUnboundIdentifier = "ERR-SEM-500"
	ErrSemAssignTypeMismatch = "ERR-SEM-510"
	ErrSemBadCoercion       = "ERR-SEM-511"
	ErrSemVoidParameter     = "ERR-SEM-512" // Open Question decision 2: Void-typed parameter slot
	ErrSemNonConstGlobalInit = "ERR-SEM-513" // Open Question decision 1: non-constant top-level initializer
	ErrSemDivByZero         = "ERR-SEM-550"
	ErrSemInputIntoGlobal   = "ERR-SEM-548"
	ErrSemConditionNotBool  = "ERR-SEM-534"
	ErrSemBreakNoTerminator = "ERR-SEM-531"
	ErrSemReassignImmutable = "ERR-SEM-560"
	ErrSemCannotCoerce      = "ERR-SEM-570"

	// Codegen / backend.
	ErrSemMissingReturn = "ERR-SEM-580"
	ErrSemVerifyFailed  = "ERR-SEM-590"
	WarnProgramExit     = "WARN-SEM-591" // nonzero JIT exit code, reported not blocked

	// Linker.
	ErrLinkFailed = "ERR-SEM-900"
)
