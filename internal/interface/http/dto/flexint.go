package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt 可以是JSON整数或整数字符串("100")
// 表单提交的数值通常是字符串,与价格字段保持一致
type FlexInt int

// UnmarshalJSON 实现json.Unmarshaler
// 小数、空字符串、非数字字符串返回错误;null由指针字段处理(保持nil)
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(strings.TrimSpace(s))
	}

	v, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("invalid integer %s", data)
	}
	*n = FlexInt(v)
	return nil
}

// IntPtr 转换为*int,未提交时返回nil
func (n *FlexInt) IntPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}
