package accountmutex

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	globalMu       sync.Mutex
	accountLocks   = make(map[int]*sync.Mutex)
	lockedAccounts = make(map[int]struct{})

	log = logrus.WithField("component", "mutex")
)

// lockedIDs возвращает отсортированный список заблокированных аккаунтов.
// Вызывается под globalMu.
func lockedIDs() []int {
	ids := make([]int, 0, len(lockedAccounts))
	for id := range lockedAccounts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LockAccount захватывает аккаунт для одной Telegram-сессии.
// Если аккаунт уже используется, возвращается ошибка без ожидания.
func LockAccount(accountID int) error {
	globalMu.Lock()
	lock, ok := accountLocks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		accountLocks[accountID] = lock
	}
	globalMu.Unlock()

	if !lock.TryLock() {
		globalMu.Lock()
		current := lockedIDs()
		globalMu.Unlock()
		log.WithFields(logrus.Fields{"account_id": accountID, "locked": current}).Warn("аккаунт занят")
		return fmt.Errorf("аккаунт %d уже используется", accountID)
	}

	globalMu.Lock()
	lockedAccounts[accountID] = struct{}{}
	current := lockedIDs()
	globalMu.Unlock()

	log.WithFields(logrus.Fields{"account_id": accountID, "locked": current}).Debug("аккаунт заблокирован")
	return nil
}

// UnlockAccount освобождает аккаунт. Повторный вызов для свободного аккаунта ничего не делает.
func UnlockAccount(accountID int) {
	globalMu.Lock()
	lock := accountLocks[accountID]
	_, held := lockedAccounts[accountID]
	delete(lockedAccounts, accountID)
	current := lockedIDs()
	globalMu.Unlock()
	if lock != nil && held {
		lock.Unlock()
		log.WithFields(logrus.Fields{"account_id": accountID, "locked": current}).Debug("аккаунт разблокирован")
	}
}
