package protocol

// Message type discriminators, flattened into Body.Type on the wire.
const (
	TypeInit   = "init"
	TypeInitOk = "init_ok"

	TypeEcho   = "echo"
	TypeEchoOk = "echo_ok"

	TypeGenerate   = "generate"
	TypeGenerateOk = "generate_ok"

	TypeBroadcast   = "broadcast"
	TypeBroadcastOk = "broadcast_ok"
	TypeRead        = "read"
	TypeReadOk      = "read_ok"
	TypeTopology    = "topology"
	TypeTopologyOk  = "topology_ok"
	TypeConsensus   = "consensus"

	TypeAdd   = "add"
	TypeAddOk = "add_ok"
	TypeCas   = "cas"
	TypeCasOk = "cas_ok"

	TypeError = "error"
)

// ErrorCode is the taxonomy of error codes the Maelstrom harness and the
// seq-kv collaborator use on the wire.
type ErrorCode int

const (
	ErrTimeout                ErrorCode = 0
	ErrNodeNotFound           ErrorCode = 1
	ErrNotSupported           ErrorCode = 10
	ErrTemporarilyUnavailable ErrorCode = 11
	ErrMalformedRequest       ErrorCode = 12
	ErrCrash                  ErrorCode = 13
	ErrAbort                  ErrorCode = 14
	ErrKeyDoesNotExist        ErrorCode = 20
	ErrKeyAlreadyExists       ErrorCode = 21
	ErrPreconditionFailed     ErrorCode = 22
	ErrTxnConflict            ErrorCode = 30
)
