package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash 失败: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("哈希结果不应等于明文")
	}
	if !h.Verify(hash, "secret123") {
		t.Error("正确密码应校验通过")
	}
	if h.Verify(hash, "wrong-password") {
		t.Error("错误密码不应校验通过")
	}
}

func TestHash_Salted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, _ := h.Hash("secret123")
	b, _ := h.Hash("secret123")
	if a == b {
		t.Error("相同密码两次哈希结果应不同")
	}
}

func TestHash_TooShort(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if _, err := h.Hash("123"); err != ErrTooShort {
		t.Errorf("期望 ErrTooShort，实际: %v", err)
	}
}

func TestHasher_CostFromConfig(t *testing.T) {
	h := NewHasher(bcrypt.MinCost + 1)

	hash, _ := h.Hash("secret123")
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("读取 cost 失败: %v", err)
	}
	if cost != bcrypt.MinCost+1 {
		t.Errorf("期望 cost=%d，实际=%d", bcrypt.MinCost+1, cost)
	}
}

func TestNewHasher_InvalidCostFallsBack(t *testing.T) {
	if NewHasher(100).cost != bcrypt.DefaultCost {
		t.Error("非法 cost 应回退到默认值")
	}
}

func TestVerify_CorruptHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if h.Verify("not-a-hash", "secret123") {
		t.Error("损坏的哈希不应校验通过")
	}
}
