package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const scheduleConfig = `
log-level: error
timewheel:
  name: lab
  workers:
    - name: fast
      period: 10ms
    - name: slow
      kind: sleep
      period: 25ms
      work: 1ms
`

var _ = Describe("commands", func() {
	var out *bytes.Buffer

	execute := func(args ...string) error {
		cmd := NewRootCommand()
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		out = &bytes.Buffer{}
		noColor := color.NoColor
		color.NoColor = true
		DeferCleanup(func() { color.NoColor = noColor })
	})

	It("should print the version", func() {
		Expect(execute("version")).To(Succeed())
		Expect(out.String()).To(HavePrefix("tidewire " + version))
	})

	Describe("schedule", func() {
		var path string

		BeforeEach(func() {
			path = filepath.Join(GinkgoT().TempDir(), "tidewire.yaml")
			Expect(os.WriteFile(path, []byte(scheduleConfig), 0o600)).To(Succeed())
		})

		It("should list the workers and their predicted runs", func() {
			Expect(execute("schedule", "--config", path, "--horizon", "50ms")).To(Succeed())

			text := out.String()
			Expect(text).To(ContainSubstring("wheel lab on executor wheel"))
			Expect(text).To(MatchRegexp(`fast\s+heartbeat\s+10ms`))
			Expect(text).To(MatchRegexp(`slow\s+sleep\s+25ms`))
			Expect(text).To(ContainSubstring("runs in the first 50ms"))

			var timeline []string
			for _, line := range strings.Split(text, "\n") {
				if f := strings.Fields(line); len(f) == 2 && strings.HasPrefix(f[0], "+") {
					timeline = append(timeline, f[0]+" "+f[1])
				}
			}
			Expect(timeline).To(Equal([]string{
				"+0s fast", "+0s slow",
				"+10ms fast",
				"+20ms fast",
				"+25ms slow",
				"+30ms fast",
				"+40ms fast",
				"+50ms fast", "+50ms slow",
			}))
		})

		It("should fail on an invalid configuration", func() {
			Expect(os.WriteFile(path, []byte("log-format: xml\n"), 0o600)).To(Succeed())

			Expect(execute("schedule", "--config", path)).To(MatchError(ContainSubstring("log-format")))
		})
	})
})
