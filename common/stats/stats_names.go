package stats

/*
This file defines all the metrics being collected. As new metrics are added please follow this pattern.
*/

const (
	/************************* Engine metrics **************************/
	/*
		number of times the engine was reset to its canonical state
	*/
	EngineResetCounter = "resetCounter"

	/*
		number of processes created
	*/
	EngineCreatedCounter = "createdCounter"

	/*
		number of processes destroyed, subtree members included
	*/
	EngineDestroyedCounter = "destroyedCounter"

	/*
		number of grants handed out, immediately or from a waitlist
	*/
	EngineGrantedCounter = "grantedCounter"

	/*
		number of requests that blocked the running process
	*/
	EngineBlockedCounter = "blockedCounter"

	/*
		number of waitlisted requests served by a release
	*/
	EngineUnblockedCounter = "unblockedCounter"

	/*
		number of grants returned, by release or by destroy
	*/
	EngineReleasedCounter = "releasedCounter"

	/*
		number of timeouts
	*/
	EngineRotatedCounter = "rotatedCounter"

	/*
		number of times selection picked a different running process
	*/
	EngineContextSwitchCounter = "contextSwitchCounter"

	/*
		number of rejected operations, scoped by rejection kind
	*/
	EngineRejectedCounter = "rejectedCounter"

	/*
		processes currently in the table, the root included
	*/
	EngineLiveProcessesGauge = "liveProcessesGauge"

	/*
		processes currently blocked in a waitlist
	*/
	EngineBlockedProcessesGauge = "blockedProcessesGauge"

	/*
		pid of the running process
	*/
	EngineRunningPidGauge = "runningPidGauge"

	/************************* Driver metrics **************************/
	/*
		number of batches executed
	*/
	DriverBatchCounter = "batchCounter"

	/*
		number of instructions executed
	*/
	DriverInstructionCounter = "instructionCounter"

	/*
		number of instructions whose result was the failure sentinel
	*/
	DriverFailedInstructionCounter = "failedInstructionCounter"

	/*
		time to execute one batch
	*/
	DriverBatchLatency_ms = "batchLatency_ms"
)
