/*
Package engine provides the Engine, a single processor process and resource
manager driven one operation at a time.

* Concepts *
Process table:

	A fixed number of slots (16 by default). Slot 0 holds the root process, which is
	always READY at priority 0 and can never be destroyed or issue a request.
	Every other process is created as a child of the running process, so the
	processes form a forest rooted at 0.

Resource classes:

	A fixed set of classes (inventories 1, 1, 2, 3 by default). Each class tracks the
	units not granted to anyone and a FIFO waitlist of blocked (pid, units) requests.

Ready queues:

	One FIFO per priority level. The running process is the head of the highest
	priority non-empty queue. Selection never preempts within a level: a process
	only loses the processor by blocking, being destroyed, a timeout or a higher
	priority process becoming ready.

* Logic *
Every operation validates first and mutates second, so a rejected operation
(a *domain.Error) leaves no trace. Once applied, an operation ends with selection
and returns the running pid.

Release (and the implicit releases done by destroy) services the class waitlist
from the head, granting every entry that fits into the available units and
skipping, without removing, entries that do not fit yet.

Internal consistency violations, such as an empty ready structure, panic.
*/
package engine
