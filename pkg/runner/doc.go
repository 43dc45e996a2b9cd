/*
Package runner implements the interactive read-process loop of the clic engine.

It is the bridge between the engine and a terminal or any other line source.
The runner reads lines through a pluggable IOHandler, cleans them, echoes them
to the sink, records them in the history log and hands them to the engine.
OS signals interrupt the running dispatch without ending the session.

# Key Components

  - Runner: The loop. Blank lines are skipped; "exit" and "quit" end it.
  - TextHandler: Reads lines from any io.Reader. Suitable for pipes and tests.
  - ReadlineHandler: A line editor for terminals. Tab completes through the
    autocomplete engine, up and down arrows browse the history log.

# Usage

	eng, _ := clic.New(ctx)
	h, _ := runner.NewReadlineHandler(eng.Completion(), eng.History())
	defer h.Close()

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithHistory(eng.History()),
		runner.WithInputHandler(h),
	)
	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
