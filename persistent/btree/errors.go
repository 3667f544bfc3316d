package btree

import "fmt"

// assertThat panics with a prefixed message if `that` is false. It is the
// vehicle for both precondition violations and structural-impossibility
// checks (debug assertions cross-checking count/depth/balance); neither
// kind is recoverable by the caller.
func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("btree: "+msg, msgargs...)
		panic(msg)
	}
}
