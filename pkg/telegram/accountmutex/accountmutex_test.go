package accountmutex

import "testing"

func TestLockAccount_Busy(t *testing.T) {
	if err := LockAccount(101); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if err := LockAccount(101); err == nil {
		t.Fatalf("ожидалась ошибка для занятого аккаунта")
	}
	if err := LockAccount(102); err != nil {
		t.Fatalf("другой аккаунт должен блокироваться независимо: %v", err)
	}
	UnlockAccount(101)
	UnlockAccount(102)
	if err := LockAccount(101); err != nil {
		t.Fatalf("после разблокировки аккаунт снова доступен: %v", err)
	}
	UnlockAccount(101)
}

// TestUnlockAccount_Twice проверяет, что повторная разблокировка не паникует.
func TestUnlockAccount_Twice(t *testing.T) {
	if err := LockAccount(201); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	UnlockAccount(201)
	UnlockAccount(201)
	UnlockAccount(999)
}
