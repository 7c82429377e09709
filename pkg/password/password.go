package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength 密码最小长度
const MinLength = 6

// ErrTooShort 密码长度不足
var ErrTooShort = errors.New("密码长度不能少于6个字符")

// Hasher bcrypt 密码哈希器，cost 来自 auth.bcrypt_cost
type Hasher struct {
	cost int
}

// NewHasher 创建密码哈希器，cost 非法时回退到 bcrypt.DefaultCost
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash 将明文密码加盐哈希
func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify 校验明文密码与哈希是否匹配，不匹配或哈希损坏均返回 false
func (h *Hasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
