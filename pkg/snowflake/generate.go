package snowflake

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once

	errInvalidMachineID   = errors.New("invalid snowflake machine id")
	errInvalidDataCenter  = errors.New("invalid snowflake datacenter id")
	errGeneratorUninitial = errors.New("snowflake generator is not initialized")
)

// Init 只生效一次，machineID 与 dataCenterID 都取 0~31
func Init(machineID, dataCenterID int64) error {
	var initErr error

	once.Do(func() {
		node, initErr = newNode(machineID, dataCenterID)
	})

	return initErr
}

func newNode(machineID, dataCenterID int64) (*snowflake.Node, error) {
	if machineID < 0 || machineID > 31 {
		return nil, errInvalidMachineID
	}
	if dataCenterID < 0 || dataCenterID > 31 {
		return nil, errInvalidDataCenter
	}
	return snowflake.NewNode((dataCenterID << 5) | machineID)
}

// NextID 生成任务 ID，需先调用 Init
func NextID() (int64, error) {
	if node == nil {
		return 0, errGeneratorUninitial
	}

	return node.Generate().Int64(), nil
}
