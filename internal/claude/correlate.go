package claude

// Bounds on the pending table: every flushCheckInterval processed lines the
// stream asks the correlator to flush, which it does only once the table holds
// more than maxPending entries. The flush is deliberately coarse: it empties
// the whole table rather than evicting the oldest entries.
const (
	flushCheckInterval = 100
	maxPending         = 100
)

// correlator matches Bash tool_use entries to their tool_result entries. It
// owns the pending table for the duration of one file traversal and is not
// safe for concurrent use.
type correlator struct {
	pending map[string]*Command
	order   []string
}

func newCorrelator() *correlator {
	return &correlator{pending: make(map[string]*Command)}
}

// observe applies one decoded entry to the state machine and returns the
// commands it resolves, in resolution order. The rules run in a fixed order so
// the same log always yields the same stream.
func (c *correlator) observe(entry LogEntry) []Command {
	var emitted []Command

	if bash, ok := extractBashCommand(entry); ok {
		if bash.id != "" {
			// Last write wins on id reuse; the original table slot keeps
			// its insertion position.
			cmd := bash.cmd
			if _, exists := c.pending[bash.id]; !exists {
				c.order = append(c.order, bash.id)
			}
			c.pending[bash.id] = &cmd
		} else {
			// Nothing to correlate against.
			bash.cmd.Success = true
			emitted = append(emitted, bash.cmd)
		}
	}

	if result, ok := extractToolResult(entry); ok {
		if cmd, exists := c.pending[result.toolUseID]; exists {
			cmd.Success = !result.isError
			delete(c.pending, result.toolUseID)
			c.compactOrder()
			emitted = append(emitted, *cmd)
		}
		// Unknown ids are dropped: non-Bash tools and already-flushed
		// commands produce results too.
	}

	if cmd, ok := extractUserCommand(entry); ok {
		cmd.Success = true
		emitted = append(emitted, cmd)
	}

	return emitted
}

// compactOrder drops resolved ids from the insertion-order slice once they
// outnumber the live ones, keeping memory proportional to the pending table
// on logs where every command resolves.
func (c *correlator) compactOrder() {
	if len(c.order) <= 2*len(c.pending) {
		return
	}
	live := c.order[:0]
	for _, id := range c.order {
		if _, exists := c.pending[id]; exists {
			live = append(live, id)
		}
	}
	c.order = live
}

// flushIfOverloaded empties the pending table when it has grown past
// maxPending. Called periodically by the stream to bound memory on logs whose
// tool uses never resolve.
func (c *correlator) flushIfOverloaded() []Command {
	if len(c.pending) <= maxPending {
		return nil
	}
	return c.flush()
}

// flush emits every pending command in insertion order, defaulted to success:
// an unmatched command is assumed to have succeeded silently.
func (c *correlator) flush() []Command {
	if len(c.pending) == 0 {
		return nil
	}
	flushed := make([]Command, 0, len(c.pending))
	for _, id := range c.order {
		cmd, exists := c.pending[id]
		if !exists {
			continue
		}
		cmd.Success = true
		flushed = append(flushed, *cmd)
	}
	c.pending = make(map[string]*Command)
	c.order = nil
	return flushed
}
