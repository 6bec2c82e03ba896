package parser

import "maps"

// Normalizer 工单类型规范化：机械规范化后按别名修正表做精确替换
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer 创建规范化器（别名表会被复制）
func NewNormalizer(aliases map[string]string) *Normalizer {
	return &Normalizer{aliases: maps.Clone(aliases)}
}

// Normalize 规范化单个类型名
func (n *Normalizer) Normalize(text string) string {
	s := NormalizeText(text)
	if canonical, ok := n.aliases[s]; ok {
		return canonical
	}
	return s
}

// Aliases 别名表副本
func (n *Normalizer) Aliases() map[string]string {
	return maps.Clone(n.aliases)
}
