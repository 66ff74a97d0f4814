package multiout_test

import (
	"errors"
	"testing"

	"github.com/rxtech-lab/multiout/internal/logger"
	"github.com/rxtech-lab/multiout/mocks"
	moerrors "github.com/rxtech-lab/multiout/pkg/errors"
	"github.com/rxtech-lab/multiout/pkg/multiout"
	"github.com/rxtech-lab/multiout/pkg/task"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"
)

type MultiplexingWriterTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	factory *mocks.MockWriterFactory[string, string]
	ctx     *task.AttemptContext
	logger  *logger.Logger
}

func TestMultiplexingWriterSuite(t *testing.T) {
	suite.Run(t, new(MultiplexingWriterTestSuite))
}

func (suite *MultiplexingWriterTestSuite) SetupSuite() {
	logger, err := logger.NewLogger()
	suite.Require().NoError(err)
	suite.logger = logger
}

func (suite *MultiplexingWriterTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.factory = mocks.NewMockWriterFactory[string, string](suite.ctrl)
	suite.ctx = task.NewAttemptContext(task.NewAttemptID("job", task.TaskTypeMap, 0, 0), task.MapConfiguration{}, nil)
}

func (suite *MultiplexingWriterTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *MultiplexingWriterTestSuite) newWriter(opts ...multiout.Option[string, string]) *multiout.MultiplexingWriter[string, string] {
	opts = append(opts, multiout.WithLogger[string, string](suite.logger))

	w, err := multiout.NewOutputFormat[string, string](suite.factory, opts...).GetWriter(suite.ctx)
	suite.Require().NoError(err)

	return w
}

func (suite *MultiplexingWriterTestSuite) TestIdentityRoutesToBaseLeaf() {
	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)

	suite.factory.EXPECT().CreateWriter(suite.ctx, "part-m-00000").Return(rw, nil).Times(1)
	rw.EXPECT().Write("a", "1").Return(nil)
	rw.EXPECT().Write("b", "2").Return(nil)
	rw.EXPECT().Write("c", "3").Return(nil)
	rw.EXPECT().Close().Return(nil).Times(1)

	w := suite.newWriter()
	suite.NoError(w.Write("a", "1"))
	suite.NoError(w.Write("b", "2"))
	suite.NoError(w.Write("c", "3"))

	suite.Equal([]string{"part-m-00000"}, w.Destinations())
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestOneWriterPerDestination() {
	eu := mocks.NewMockRecordWriter[string, string](suite.ctrl)
	us := mocks.NewMockRecordWriter[string, string](suite.ctrl)

	suite.factory.EXPECT().CreateWriter(gomock.Any(), "eu/part-m-00000").Return(eu, nil).Times(1)
	suite.factory.EXPECT().CreateWriter(gomock.Any(), "us/part-m-00000").Return(us, nil).Times(1)
	eu.EXPECT().Write("eu", gomock.Any()).Return(nil).Times(50)
	us.EXPECT().Write("us", gomock.Any()).Return(nil).Times(50)
	eu.EXPECT().Close().Return(nil).Times(1)
	us.EXPECT().Close().Return(nil).Times(1)

	w := suite.newWriter(multiout.WithDestinationLeaf(multiout.KeyAsDirectory[string, string]))

	for i := 0; i < 50; i++ {
		suite.Require().NoError(w.Write("eu", "v"))
		suite.Require().NoError(w.Write("us", "v"))
	}

	suite.Equal(2, w.Len())
	suite.Equal([]string{"eu/part-m-00000", "us/part-m-00000"}, w.Destinations())
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestActualKeyAndValueAreWritten() {
	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)

	suite.factory.EXPECT().CreateWriter(gomock.Any(), "eu/part-m-00000").Return(rw, nil)
	rw.EXPECT().Write("", "eu:42").Return(nil)
	rw.EXPECT().Close().Return(nil)

	w := suite.newWriter(
		multiout.WithDestinationLeaf(multiout.KeyAsDirectory[string, string]),
		multiout.WithActualKey(func(_, _ string) string { return "" }),
		multiout.WithActualValue(func(key, value string) string { return key + ":" + value }),
	)

	suite.NoError(w.Write("eu", "42"))
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestInputAwareDestination() {
	suite.ctx = task.NewAttemptContext(
		task.NewAttemptID("job", task.TaskTypeMap, 4, 0),
		task.MapConfiguration{task.ConfTrailingSegments: "2"},
		nil,
		task.WithInputPath("/data/logs/2024/01/events.log"),
	)

	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)
	suite.factory.EXPECT().CreateWriter(gomock.Any(), "2024/01/eu/part-m-00004").Return(rw, nil)
	rw.EXPECT().Write("eu", "v").Return(nil)
	rw.EXPECT().Close().Return(nil)

	w := suite.newWriter(multiout.WithDestinationLeaf(multiout.KeyAsDirectory[string, string]))
	suite.Equal("2024/01/eu/part-m-00004", w.Destination("eu", "v"))
	suite.NoError(w.Write("eu", "v"))
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestLexicallyEqualDestinationsShareOneWriter() {
	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)

	suite.factory.EXPECT().CreateWriter(gomock.Any(), "y-part-m-00000").Return(rw, nil).Times(1)
	rw.EXPECT().Write("y", "first").Return(nil)
	rw.EXPECT().Write("./y", "second").Return(nil)
	rw.EXPECT().Close().Return(nil).Times(1)

	w := suite.newWriter(multiout.WithDestinationLeaf(multiout.KeyAsPrefix[string, string]))

	suite.Equal("y-part-m-00000", w.Destination("./y", "v"))
	suite.Equal("a/b-part-m-00000", w.Destination("a//b", "v"))

	suite.NoError(w.Write("y", "first"))
	suite.NoError(w.Write("./y", "second"))

	suite.Equal([]string{"y-part-m-00000"}, w.Destinations())
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestDestinationIsDeterministic() {
	w := suite.newWriter(multiout.WithDestinationLeaf(multiout.KeyAsPrefix[string, string]))

	suite.Equal(w.Destination("eu", "v"), w.Destination("eu", "v"))
	suite.Equal("eu-part-m-00000", w.Destination("eu", "v"))
	// Resolving a destination never opens it.
	suite.Equal(0, w.Len())
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestCreationErrorIsTaggedAndNotCached() {
	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)
	denied := errors.New("permission denied")

	gomock.InOrder(
		suite.factory.EXPECT().CreateWriter(gomock.Any(), "eu/part-m-00000").Return(nil, denied),
		suite.factory.EXPECT().CreateWriter(gomock.Any(), "eu/part-m-00000").Return(rw, nil),
	)
	rw.EXPECT().Write("eu", "2").Return(nil)
	rw.EXPECT().Close().Return(nil)

	w := suite.newWriter(multiout.WithDestinationLeaf(multiout.KeyAsDirectory[string, string]))

	err := w.Write("eu", "1")
	suite.Error(err)
	suite.True(moerrors.IsCreationError(err))
	suite.ErrorIs(err, denied)

	destination, ok := moerrors.GetDestination(err)
	suite.True(ok)
	suite.Equal("eu/part-m-00000", destination)
	suite.Equal(0, w.Len())

	suite.NoError(w.Write("eu", "2"))
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestWriteErrorIsTagged() {
	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)
	full := errors.New("disk full")

	suite.factory.EXPECT().CreateWriter(gomock.Any(), "part-m-00000").Return(rw, nil)
	rw.EXPECT().Write("a", "1").Return(full)
	rw.EXPECT().Close().Return(nil)

	w := suite.newWriter()

	err := w.Write("a", "1")
	suite.True(moerrors.IsWriteError(err))
	suite.ErrorIs(err, full)

	destination, _ := moerrors.GetDestination(err)
	suite.Equal("part-m-00000", destination)

	// The writer stays cached and is still closed.
	suite.Equal(1, w.Len())
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestCloseDrainsEveryWriterDespiteFailures() {
	destinations := []string{"a", "b", "c", "d"}
	failing := map[string]bool{"b": true, "d": true}

	for _, key := range destinations {
		rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)
		suite.factory.EXPECT().CreateWriter(gomock.Any(), key+"/part-m-00000").Return(rw, nil).Times(1)
		rw.EXPECT().Write(key, "v").Return(nil)

		if failing[key] {
			rw.EXPECT().Close().Return(errors.New("flush failed")).Times(1)
		} else {
			rw.EXPECT().Close().Return(nil).Times(1)
		}
	}

	w := suite.newWriter(multiout.WithDestinationLeaf(multiout.KeyAsDirectory[string, string]))
	for _, key := range destinations {
		suite.Require().NoError(w.Write(key, "v"))
	}

	err := w.Close()
	suite.Error(err)
	suite.True(moerrors.IsCloseError(err))

	errs := multierr.Errors(err)
	suite.Require().Len(errs, 2)

	var failed []string
	for _, e := range errs {
		destination, ok := moerrors.GetDestination(e)
		suite.True(ok)
		failed = append(failed, destination)
	}

	suite.Equal([]string{"b/part-m-00000", "d/part-m-00000"}, failed)
	// Destinations are still reported after Close.
	suite.Len(w.Destinations(), 4)
}

func (suite *MultiplexingWriterTestSuite) TestWriteAfterCloseIsRejected() {
	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)

	suite.factory.EXPECT().CreateWriter(gomock.Any(), "part-m-00000").Return(rw, nil).Times(1)
	rw.EXPECT().Write("a", "1").Return(nil).Times(1)
	rw.EXPECT().Close().Return(nil).Times(1)

	w := suite.newWriter()
	suite.NoError(w.Write("a", "1"))
	suite.NoError(w.Close())

	err := w.Write("a", "2")
	suite.Error(err)
	suite.True(moerrors.HasCode(err, moerrors.ErrCodeWriterClosed))
	suite.Contains(err.Error(), "closed")
}

func (suite *MultiplexingWriterTestSuite) TestWriteAfterFailedCloseIsRejected() {
	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)

	suite.factory.EXPECT().CreateWriter(gomock.Any(), gomock.Any()).Return(rw, nil).Times(1)
	rw.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
	rw.EXPECT().Close().Return(errors.New("boom"))

	w := suite.newWriter()
	suite.NoError(w.Write("a", "1"))
	suite.Error(w.Close())

	suite.True(moerrors.HasCode(w.Write("a", "1"), moerrors.ErrCodeWriterClosed))
}

func (suite *MultiplexingWriterTestSuite) TestCloseIsIdempotent() {
	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)

	suite.factory.EXPECT().CreateWriter(gomock.Any(), gomock.Any()).Return(rw, nil)
	rw.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
	rw.EXPECT().Close().Return(nil).Times(1)

	w := suite.newWriter()
	suite.NoError(w.Write("a", "1"))
	suite.NoError(w.Close())
	suite.NoError(w.Close())
}

func (suite *MultiplexingWriterTestSuite) TestCloseWithoutWrites() {
	w := suite.newWriter()
	suite.NoError(w.Close())
	suite.Empty(w.Destinations())
}

func (suite *MultiplexingWriterTestSuite) TestWriterFactoryFunc() {
	var created []string

	rw := mocks.NewMockRecordWriter[string, string](suite.ctrl)
	rw.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	rw.EXPECT().Close().Return(nil)

	factory := multiout.WriterFactoryFunc[string, string](func(_ task.Context, destination string) (multiout.RecordWriter[string, string], error) {
		created = append(created, destination)

		return rw, nil
	})

	w, err := multiout.NewOutputFormat[string, string](factory).GetWriter(suite.ctx)
	suite.Require().NoError(err)

	for i := 0; i < 3; i++ {
		suite.Require().NoError(w.Write("k", "v"))
	}

	suite.NoError(w.Close())
	suite.Equal([]string{"part-m-00000"}, created)
}
