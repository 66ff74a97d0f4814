package multiout

import (
	"testing"

	"github.com/rxtech-lab/multiout/pkg/task"
	"github.com/stretchr/testify/suite"
)

type NamingTestSuite struct {
	suite.Suite
}

func TestNamingSuite(t *testing.T) {
	suite.Run(t, new(NamingTestSuite))
}

func (suite *NamingTestSuite) newContext(segments string, input string) task.Context {
	conf := task.MapConfiguration{}
	if segments != "" {
		conf[task.ConfTrailingSegments] = segments
	}

	var opts []task.ContextOption
	if input != "" {
		opts = append(opts, task.WithInputPath(input))
	}

	return task.NewAttemptContext(task.NewAttemptID("job", task.TaskTypeMap, 0, 0), conf, nil, opts...)
}

func (suite *NamingTestSuite) TestInputAwareName() {
	tests := []struct {
		name     string
		segments string
		input    string
		expected string
	}{
		{name: "two segments", segments: "2", input: "/a/b/c/file.txt", expected: "b/c/part-m-00000"},
		{name: "one segment", segments: "1", input: "/a/b/c/file.txt", expected: "c/part-m-00000"},
		{name: "all segments", segments: "3", input: "/a/b/c/file.txt", expected: "a/b/c/part-m-00000"},
		{name: "more than available", segments: "5", input: "/x/y/file.txt", expected: "x/y/part-m-00000"},
		{name: "relative path", segments: "5", input: "x/y/file.txt", expected: "x/y/part-m-00000"},
		{name: "file at root", segments: "2", input: "/file.txt", expected: "part-m-00000"},
		{name: "bare file name", segments: "2", input: "file.txt", expected: "part-m-00000"},
		{name: "uri", segments: "2", input: "s3://bucket/logs/2024/01/file.gz", expected: "2024/01/part-m-00000"},
		{name: "windows separators", segments: "2", input: `data\2024\01\file.txt`, expected: "2024/01/part-m-00000"},
		{name: "windows drive", segments: "5", input: `C:\data\f.txt`, expected: "data/part-m-00000"},
		{name: "drive only", segments: "2", input: `C:\f.txt`, expected: "part-m-00000"},
		{name: "file uri with drive", segments: "5", input: "file:///C:/data/2024/f.txt", expected: "data/2024/part-m-00000"},
		{name: "zero segments", segments: "0", input: "/a/b/c/file.txt", expected: "part-m-00000"},
		{name: "negative segments", segments: "-3", input: "/a/b/c/file.txt", expected: "part-m-00000"},
		{name: "unset segments", segments: "", input: "/a/b/c/file.txt", expected: "part-m-00000"},
		{name: "no input path", segments: "2", input: "", expected: "part-m-00000"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			ctx := suite.newContext(tt.segments, tt.input)
			suite.Equal(tt.expected, InputAwareName(ctx, "part-m-00000"))
		})
	}
}

func (suite *NamingTestSuite) TestKeepsKeyDerivedCandidate() {
	ctx := suite.newContext("2", "/a/b/c/file.txt")
	suite.Equal("b/c/eu/part-m-00000", InputAwareName(ctx, "eu/part-m-00000"))
}

func (suite *NamingTestSuite) TestDeterministic() {
	ctx := suite.newContext("2", "/a/b/c/file.txt")
	suite.Equal(InputAwareName(ctx, "part-m-00000"), InputAwareName(ctx, "part-m-00000"))
}

func (suite *NamingTestSuite) TestIsVolume() {
	suite.True(isVolume("C:"))
	suite.True(isVolume("z:"))
	suite.False(isVolume("C"))
	suite.False(isVolume("1:"))
	suite.False(isVolume("ab:"))
	suite.False(isVolume("data"))
}
