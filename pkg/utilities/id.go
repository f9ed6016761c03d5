package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewRequestID generates a KSUID string used to tag incoming HTTP requests.
func NewRequestID() string {
	return ksuid.New().String()
}

// NewUserID generates a snowflake ID for a new user record. The node ID
// comes from the SNOWFLAKE_NODE environment variable and defaults to 1.
// The node is initialized once per process so sequence numbers stay unique.
func NewUserID() int64 {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = parsed
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			// nodeID out of range; node 1 is always valid
			n, _ = snowflake.NewNode(1)
		}
		node = n
	})
	return node.Generate().Int64()
}
