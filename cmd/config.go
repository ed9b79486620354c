package cmd

const DESCRIPTION = `
Glidetop keeps an eye on your Claude usage limits from the
terminal. It draws a progress bar per rate-limit window with a
glide-slope marker showing where your spend would sit if it were
spread evenly across the window, so you can tell at a glance
whether you are ahead of or behind your budget.
`

const MonitorDescription = `The monitor command starts the live dashboard. It polls the
usage API every 30 seconds while the terminal is focused and
every 10 minutes while it is not.

Keys:
        q   quit
        r   refresh immediately
        t   set a fixed refresh interval

Example:
        glidetop
                    OR
        glidetop monitor --interval 60

`
