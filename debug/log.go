package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/mpmap/wire"
)

// Doc is a MessagePack document which Logf renders as JSON.
type Doc []byte

func (x Doc) String() string {
	buf := bytes.NewBuffer(nil)
	if err := wire.ToJSON(buf, x); err != nil {
		return fmt.Sprintf("[raw msgpack] % x", []byte(x))
	}
	return buf.String()
}

// Logf writes a debug message to stderr. Doc arguments are rendered as
// JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		if x, ok := args[i].(Doc); ok {
			args[i] = x.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
