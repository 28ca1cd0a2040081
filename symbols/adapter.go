package symbols

import "github.com/wippyai/guest-bridge/guest"

// Accessors for the service adapter lifecycle and dispatch functions
// (AdapterNamespace). Each panics unless the cache is populated.

func (c *Cache) AdapterInitialize() guest.FuncHandle {
	c.checkReady()
	return c.t.initialize
}

func (c *Cache) AdapterDeployArtifact() guest.FuncHandle {
	c.checkReady()
	return c.t.deployArtifact
}

func (c *Cache) AdapterIsArtifactDeployed() guest.FuncHandle {
	c.checkReady()
	return c.t.isArtifactDeployed
}

func (c *Cache) AdapterInitiateAddingService() guest.FuncHandle {
	c.checkReady()
	return c.t.initiateAddingService
}

func (c *Cache) AdapterInitiateResumingService() guest.FuncHandle {
	c.checkReady()
	return c.t.initiateResumingService
}

func (c *Cache) AdapterUpdateServiceStatus() guest.FuncHandle {
	c.checkReady()
	return c.t.updateServiceStatus
}

func (c *Cache) AdapterExecuteTransaction() guest.FuncHandle {
	c.checkReady()
	return c.t.executeTransaction
}

func (c *Cache) AdapterBeforeTransactions() guest.FuncHandle {
	c.checkReady()
	return c.t.beforeTransactions
}

func (c *Cache) AdapterAfterTransactions() guest.FuncHandle {
	c.checkReady()
	return c.t.afterTransactions
}

func (c *Cache) AdapterAfterCommit() guest.FuncHandle {
	c.checkReady()
	return c.t.afterCommit
}

func (c *Cache) AdapterShutdown() guest.FuncHandle {
	c.checkReady()
	return c.t.shutdown
}

// Process-wide variants.

func AdapterInitialize() guest.FuncHandle      { return defaultCache.AdapterInitialize() }
func AdapterDeployArtifact() guest.FuncHandle  { return defaultCache.AdapterDeployArtifact() }
func AdapterIsArtifactDeployed() guest.FuncHandle {
	return defaultCache.AdapterIsArtifactDeployed()
}
func AdapterInitiateAddingService() guest.FuncHandle {
	return defaultCache.AdapterInitiateAddingService()
}
func AdapterInitiateResumingService() guest.FuncHandle {
	return defaultCache.AdapterInitiateResumingService()
}
func AdapterUpdateServiceStatus() guest.FuncHandle {
	return defaultCache.AdapterUpdateServiceStatus()
}
func AdapterExecuteTransaction() guest.FuncHandle {
	return defaultCache.AdapterExecuteTransaction()
}
func AdapterBeforeTransactions() guest.FuncHandle {
	return defaultCache.AdapterBeforeTransactions()
}
func AdapterAfterTransactions() guest.FuncHandle {
	return defaultCache.AdapterAfterTransactions()
}
func AdapterAfterCommit() guest.FuncHandle { return defaultCache.AdapterAfterCommit() }
func AdapterShutdown() guest.FuncHandle    { return defaultCache.AdapterShutdown() }
