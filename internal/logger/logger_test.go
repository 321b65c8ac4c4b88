package logger_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tidewire/tidewire/internal/logger"
)

var _ = Describe("Logger", func() {
	It("should honour the level", func() {
		l, err := logger.New("json", "warn")
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Core().Enabled(zapcore.InfoLevel)).To(BeFalse())
		Expect(l.Core().Enabled(zapcore.WarnLevel)).To(BeTrue())
	})

	It("should build a console logger", func() {
		l, err := logger.New("console", "debug")
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Core().Enabled(zapcore.DebugLevel)).To(BeTrue())
	})

	It("should reject unknown formats and levels", func() {
		_, err := logger.New("xml", "info")
		Expect(err).To(HaveOccurred())
		_, err = logger.New("json", "loud")
		Expect(err).To(HaveOccurred())
	})

	It("should install and restore the global logger", func() {
		before := zap.L()
		restore, err := logger.Setup("json", "error")
		Expect(err).NotTo(HaveOccurred())
		Expect(zap.L()).NotTo(BeIdenticalTo(before))
		Expect(zap.L().Core().Enabled(zapcore.WarnLevel)).To(BeFalse())

		restore()
		Expect(zap.L()).To(BeIdenticalTo(before))
	})
})
