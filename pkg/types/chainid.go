// Package types 定义 NetBanner 公共基础类型
package types

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CAIPNamespaceEIP155 EVM 链的 CAIP-2 命名空间
const CAIPNamespaceEIP155 = "eip155"

// ErrEmptyChainID 链 ID 为空
var ErrEmptyChainID = errors.New("empty chain id")

// ChainID 十六进制链 ID（如 "0x1"）
type ChainID string

// String 返回原始十六进制字符串
func (c ChainID) String() string {
	return string(c)
}

// Decimal 将十六进制链 ID 转换为十进制整数
//
// 要求 "0x" 前缀且无前导零（"0x01" 视为格式错误）。
func (c ChainID) Decimal() (*big.Int, error) {
	if c == "" {
		return nil, ErrEmptyChainID
	}
	n, err := hexutil.DecodeBig(strings.ToLower(string(c)))
	if err != nil {
		return nil, fmt.Errorf("invalid chain id %q: %w", string(c), err)
	}
	return n, nil
}

// CAIP 返回 CAIP-2 链标识，如 "eip155:1"
func (c ChainID) CAIP() (string, error) {
	n, err := c.Decimal()
	if err != nil {
		return "", err
	}
	return CAIPNamespaceEIP155 + ":" + n.String(), nil
}

// Validate 检查链 ID 是否可解析
func (c ChainID) Validate() error {
	_, err := c.Decimal()
	return err
}

// ChainIDFromUint64 由十进制构造十六进制链 ID
func ChainIDFromUint64(n uint64) ChainID {
	return ChainID(hexutil.EncodeUint64(n))
}
